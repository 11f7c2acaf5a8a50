package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/opdetect/opqa/internal/detector"
	"github.com/opdetect/opqa/internal/scenario"
)

// QualityAnalyzer runs a detector over a set of scenarios and computes
// detection-quality metrics. It is not safe for concurrent use; callers
// sharing one instance must serialize access.
type QualityAnalyzer struct {
	det       detector.Detector
	scenarios []scenario.Scenario
	results   []QualityResult
	logger    *slog.Logger
}

// New creates an analyzer around the given detector.
func New(det detector.Detector) *QualityAnalyzer {
	return &QualityAnalyzer{
		det:    det,
		logger: slog.Default().With("component", "analyzer"),
	}
}

// AddScenario appends a scenario to the evaluation set, in insertion order.
func (a *QualityAnalyzer) AddScenario(s scenario.Scenario) {
	a.scenarios = append(a.scenarios, s)
}

// ScenarioCount returns the number of scenarios added so far.
func (a *QualityAnalyzer) ScenarioCount() int {
	return len(a.scenarios)
}

// Results returns the full, append-only history of computed results.
// Every RunAnalysis call appends its results here; nothing is ever removed.
func (a *QualityAnalyzer) Results() []QualityResult {
	return a.results
}

// RunAnalysis runs the detector over every scenario sequentially, then
// computes the requested metrics. With no metrics given, all metrics are
// computed in declared order. Each computed result is appended to the
// results history; the returned map holds exactly the requested metrics.
//
// Detector errors propagate unmodified.
func (a *QualityAnalyzer) RunAnalysis(ctx context.Context, metrics ...AnalysisMetric) (map[AnalysisMetric]QualityResult, error) {
	if len(a.scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	if len(metrics) == 0 {
		metrics = AllMetrics()
	} else {
		metrics = dedupe(metrics)
		for _, m := range metrics {
			if _, err := ParseMetric(string(m)); err != nil {
				return nil, err
			}
		}
	}

	a.logger.Debug("running analysis",
		"scenarios", len(a.scenarios), "metrics", len(metrics))

	runs := make([]scenarioRun, 0, len(a.scenarios))
	timings := make([]float64, 0, len(a.scenarios))
	for _, sc := range a.scenarios {
		start := time.Now()
		ops, err := a.det.Detect(ctx, sc.Events)
		if err != nil {
			return nil, err
		}
		elapsedMS := float64(time.Since(start)) / float64(time.Millisecond)

		runs = append(runs, scenarioRun{scenario: sc, detected: ops})
		timings = append(timings, elapsedMS)
	}

	out := make(map[AnalysisMetric]QualityResult, len(metrics))
	for _, m := range metrics {
		var res QualityResult
		switch m {
		case MetricAccuracy:
			res = computeAccuracy(runs)
		case MetricPrecision:
			res = computePrecision(runs)
		case MetricRecall:
			res = computeRecall(runs)
		case MetricF1Score:
			// F1 derives from precision and recall even when neither was
			// independently requested.
			res = computeF1(computePrecision(runs).Value, computeRecall(runs).Value)
		case MetricConfidenceDistribution:
			res = computeConfidenceDistribution(runs)
		case MetricDetectionTime:
			res = computeDetectionTime(timings)
		case MetricFalsePositiveRate:
			res = computeFalsePositiveRate(runs)
		case MetricFalseNegativeRate:
			res = computeFalseNegativeRate(runs)
		}

		a.results = append(a.results, res)
		out[m] = res
	}

	return out, nil
}

func dedupe(metrics []AnalysisMetric) []AnalysisMetric {
	seen := make(map[AnalysisMetric]bool, len(metrics))
	out := make([]AnalysisMetric, 0, len(metrics))
	for _, m := range metrics {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
