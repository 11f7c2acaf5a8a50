package analyzer

import (
	"github.com/montanaflynn/stats"
)

// computeConfidenceDistribution aggregates detector confidence scores
// across all scenarios, overall and per operation type.
func computeConfidenceDistribution(runs []scenarioRun) QualityResult {
	var all []float64
	byType := make(map[string][]float64)

	for _, r := range runs {
		for _, op := range r.detected {
			all = append(all, op.Confidence)
			typ := op.Type.String()
			byType[typ] = append(byType[typ], op.Confidence)
		}
	}

	if len(all) == 0 {
		return QualityResult{
			Metric: MetricConfidenceDistribution,
			Value:  0.0,
			Details: map[string]any{
				"error": "No confidence scores available",
			},
		}
	}

	average, _ := stats.Mean(all)
	minimum, _ := stats.Min(all)
	maximum, _ := stats.Max(all)

	perType := make(map[string]map[string]any, len(byType))
	for typ, vals := range byType {
		avg, _ := stats.Mean(vals)
		lo, _ := stats.Min(vals)
		hi, _ := stats.Max(vals)
		perType[typ] = map[string]any{
			"count":   len(vals),
			"average": avg,
			"min":     lo,
			"max":     hi,
		}
	}

	return QualityResult{
		Metric: MetricConfidenceDistribution,
		Value:  average,
		Details: map[string]any{
			"total_operations": len(all),
			"average":          average,
			"min":              minimum,
			"max":              maximum,
			"by_type":          perType,
		},
	}
}
