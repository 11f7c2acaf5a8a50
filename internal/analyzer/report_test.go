package analyzer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opdetect/opqa/internal/detector"
	"github.com/opdetect/opqa/internal/scenario"
)

func TestGenerateReportBeforeAnalysis(t *testing.T) {
	qa := New(&queueDetector{})
	assert.Equal(t, "No analysis results available.", qa.GenerateReport(nil))
}

func TestGenerateReportLayout(t *testing.T) {
	det := &queueDetector{responses: [][]detector.Operation{
		{op(detector.OpRename, 0.9), op(detector.OpRename, 0.95)},
	}}

	qa := New(det)
	qa.AddScenario(scenario.Scenario{Name: "r", Expected: expecting("rename", "rename")})

	results, err := qa.RunAnalysis(context.Background())
	require.NoError(t, err)

	report := qa.GenerateReport(results)
	lines := strings.Split(report, "\n")

	require.GreaterOrEqual(t, len(lines), 7)
	assert.Equal(t, "File Operation Detection Quality Report", lines[0])
	assert.Equal(t, strings.Repeat("=", 45), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Generated: "))
	assert.Equal(t, "Scenarios analyzed: 1", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "Metrics:", lines[5])

	assert.Contains(t, report, "  Accuracy: 1.000")
	assert.Contains(t, report, "(100.0% of operations correct)")
	assert.Contains(t, report, "  F1 Score: 1.000")
	assert.Contains(t, report, "  Detection Time: ")
	assert.Contains(t, report, "avg ")
	assert.Contains(t, report, "p95 ")
	assert.Contains(t, report, "By operation type:")
	assert.Contains(t, report, "rename: avg 0.925 (2 ops)")

	// Metrics render in declared order.
	accuracyIdx := strings.Index(report, "Accuracy:")
	fnrIdx := strings.Index(report, "False Negative Rate:")
	assert.Greater(t, fnrIdx, accuracyIdx)
}

func TestGenerateReportExplicitSubset(t *testing.T) {
	det := &queueDetector{responses: [][]detector.Operation{
		{op(detector.OpEdit, 0.7)},
	}}

	qa := New(det)
	qa.AddScenario(scenario.Scenario{Name: "e", Expected: expecting("edit")})

	results, err := qa.RunAnalysis(context.Background(), MetricPrecision)
	require.NoError(t, err)

	report := qa.GenerateReport(results)
	assert.Contains(t, report, "Precision: 1.000")
	assert.NotContains(t, report, "Recall:")
	assert.NotContains(t, report, "Accuracy:")
}

func TestGenerateReportLatestResultWins(t *testing.T) {
	det := &queueDetector{responses: [][]detector.Operation{
		{op(detector.OpRename, 0.9)}, // first run: one scenario, perfect
		{op(detector.OpRename, 0.9)}, // second run, scenario 1
		nil,                          // second run, scenario 2: miss
	}}

	qa := New(det)
	qa.AddScenario(scenario.Scenario{Name: "hit", Expected: expecting("rename")})

	_, err := qa.RunAnalysis(context.Background(), MetricAccuracy)
	require.NoError(t, err)

	qa.AddScenario(scenario.Scenario{Name: "miss", Expected: expecting("rename")})
	_, err = qa.RunAnalysis(context.Background(), MetricAccuracy)
	require.NoError(t, err)

	// Derived report surfaces the most recent accuracy (0.5), not the first.
	report := qa.GenerateReport(nil)
	assert.Contains(t, report, "Accuracy: 0.500")
	assert.NotContains(t, report, "Accuracy: 1.000")

	// History still holds both.
	require.Len(t, qa.Results(), 2)
	assert.Equal(t, 1.0, qa.Results()[0].Value)
	assert.Equal(t, 0.5, qa.Results()[1].Value)
}

func TestGenerateReportSkipsConfidenceBreakdownOnError(t *testing.T) {
	qa := New(&queueDetector{})
	qa.AddScenario(scenario.Scenario{Name: "quiet"})

	results, err := qa.RunAnalysis(context.Background(), MetricConfidenceDistribution)
	require.NoError(t, err)

	report := qa.GenerateReport(results)
	assert.Contains(t, report, "Confidence Distribution: 0.000")
	assert.NotContains(t, report, "By operation type:")
}

func TestMetricDisplayName(t *testing.T) {
	tests := []struct {
		metric AnalysisMetric
		want   string
	}{
		{MetricAccuracy, "Accuracy"},
		{MetricF1Score, "F1 Score"},
		{MetricConfidenceDistribution, "Confidence Distribution"},
		{MetricFalsePositiveRate, "False Positive Rate"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, metricDisplayName(tt.metric))
	}
}
