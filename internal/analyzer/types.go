// Package analyzer evaluates a file-operation detector against scenario
// suites and computes detection-quality metrics over the results.
package analyzer

import (
	"github.com/opdetect/opqa/internal/detector"
	"github.com/opdetect/opqa/internal/errors"
	"github.com/opdetect/opqa/internal/scenario"
)

// AnalysisMetric identifies one detection-quality metric.
type AnalysisMetric string

const (
	MetricAccuracy               AnalysisMetric = "accuracy"
	MetricPrecision              AnalysisMetric = "precision"
	MetricRecall                 AnalysisMetric = "recall"
	MetricF1Score                AnalysisMetric = "f1_score"
	MetricConfidenceDistribution AnalysisMetric = "confidence_distribution"
	MetricDetectionTime          AnalysisMetric = "detection_time"
	MetricFalsePositiveRate      AnalysisMetric = "false_positive_rate"
	MetricFalseNegativeRate      AnalysisMetric = "false_negative_rate"
)

// AllMetrics returns every metric in declared order.
func AllMetrics() []AnalysisMetric {
	return []AnalysisMetric{
		MetricAccuracy,
		MetricPrecision,
		MetricRecall,
		MetricF1Score,
		MetricConfidenceDistribution,
		MetricDetectionTime,
		MetricFalsePositiveRate,
		MetricFalseNegativeRate,
	}
}

// ParseMetric converts a string into a known metric.
func ParseMetric(s string) (AnalysisMetric, error) {
	for _, m := range AllMetrics() {
		if s == string(m) {
			return m, nil
		}
	}
	return "", errors.Newf(errors.ErrorTypeValidation, "unknown metric %q", s)
}

// QualityResult is the outcome of computing one metric.
// Value is the headline number (0.0 when the metric is undefined because of
// an empty denominator); Details carries metric-specific auxiliary numbers.
type QualityResult struct {
	Metric  AnalysisMetric `json:"metric"`
	Value   float64        `json:"value"`
	Details map[string]any `json:"details"`
}

// ErrNoScenarios is returned by RunAnalysis when no scenarios were added.
var ErrNoScenarios = errors.Validation("no scenarios to analyze")

// scenarioRun holds the detection output and timing for one scenario.
type scenarioRun struct {
	scenario scenario.Scenario
	detected []detector.Operation
}

// detectedCounts counts detected operations by type string.
func detectedCounts(ops []detector.Operation) map[string]int {
	counts := make(map[string]int, len(ops))
	for _, op := range ops {
		counts[op.Type.String()]++
	}
	return counts
}

// expectedCounts counts expected operations by type string.
func expectedCounts(expected []scenario.ExpectedOperation) map[string]int {
	counts := make(map[string]int, len(expected))
	for _, exp := range expected {
		counts[exp.Type]++
	}
	return counts
}
