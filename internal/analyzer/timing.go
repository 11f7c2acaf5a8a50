package analyzer

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// computeDetectionTime summarizes per-scenario detection latencies in
// milliseconds. Percentiles select the value at the floor-truncated rank of
// the sorted list, with no interpolation between adjacent ranks.
func computeDetectionTime(timings []float64) QualityResult {
	if len(timings) == 0 {
		return QualityResult{
			Metric: MetricDetectionTime,
			Value:  0.0,
			Details: map[string]any{
				"error": "No timing data available",
			},
		}
	}

	sorted := append([]float64(nil), timings...)
	sort.Float64s(sorted)

	n := len(sorted)
	p50 := sorted[n/2]
	p95 := sorted[int(float64(n)*0.95)]
	p99 := sorted[int(float64(n)*0.99)]

	average, _ := stats.Mean(timings)
	minimum, _ := stats.Min(timings)
	maximum, _ := stats.Max(timings)

	return QualityResult{
		Metric: MetricDetectionTime,
		Value:  average,
		Details: map[string]any{
			"total_tests": n,
			"average_ms":  average,
			"min_ms":      minimum,
			"max_ms":      maximum,
			"p50_ms":      p50,
			"p95_ms":      p95,
			"p99_ms":      p99,
		},
	}
}
