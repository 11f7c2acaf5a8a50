package analyzer

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const noResultsMessage = "No analysis results available."

// GenerateReport renders the given results as a human-readable text report.
// With a nil or empty map, the latest result per metric is derived from the
// results history (newest wins when multiple runs computed the same
// metric). With no history either, it returns a fixed placeholder string.
func (a *QualityAnalyzer) GenerateReport(results map[AnalysisMetric]QualityResult) string {
	if len(results) == 0 {
		results = a.latestResults()
	}
	if len(results) == 0 {
		return noResultsMessage
	}

	lines := []string{
		"File Operation Detection Quality Report",
		strings.Repeat("=", 45),
		fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC3339)),
		fmt.Sprintf("Scenarios analyzed: %d", len(a.scenarios)),
		"",
		"Metrics:",
	}

	for _, m := range AllMetrics() {
		res, ok := results[m]
		if !ok {
			continue
		}

		lines = append(lines, fmt.Sprintf("  %s: %.3f", metricDisplayName(m), res.Value))

		switch m {
		case MetricAccuracy:
			if pct, ok := res.Details["percentage"].(float64); ok {
				lines = append(lines, fmt.Sprintf("    (%.1f%% of operations correct)", pct))
			}
		case MetricDetectionTime:
			if avg, ok := res.Details["average_ms"].(float64); ok {
				p95, _ := res.Details["p95_ms"].(float64)
				lines = append(lines, fmt.Sprintf("    avg %.2fms, p95 %.2fms", avg, p95))
			}
		case MetricConfidenceDistribution:
			lines = append(lines, confidenceByTypeLines(res)...)
		}
	}

	return strings.Join(lines, "\n")
}

// latestResults derives the most recent result per metric from the history,
// scanning newest-first.
func (a *QualityAnalyzer) latestResults() map[AnalysisMetric]QualityResult {
	out := make(map[AnalysisMetric]QualityResult)
	for i := len(a.results) - 1; i >= 0; i-- {
		r := a.results[i]
		if _, seen := out[r.Metric]; !seen {
			out[r.Metric] = r
		}
	}
	return out
}

func confidenceByTypeLines(res QualityResult) []string {
	byType, ok := res.Details["by_type"].(map[string]map[string]any)
	if !ok || len(byType) == 0 {
		return nil
	}

	types := make([]string, 0, len(byType))
	for typ := range byType {
		types = append(types, typ)
	}
	sort.Strings(types)

	lines := []string{"    By operation type:"}
	for _, typ := range types {
		entry := byType[typ]
		avg, _ := entry["average"].(float64)
		count, _ := entry["count"].(int)
		lines = append(lines, fmt.Sprintf("      %s: avg %.3f (%d ops)", typ, avg, count))
	}
	return lines
}

// metricDisplayName turns "false_positive_rate" into "False Positive Rate".
func metricDisplayName(m AnalysisMetric) string {
	words := strings.Split(string(m), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
