package analyzer

// computeFalsePositiveRate measures spurious detections over scenarios
// where nothing was expected. Every such scenario counts as one negative
// case (a true negative when the detector stayed quiet); scenarios with
// expectations are excluded entirely.
func computeFalsePositiveRate(runs []scenarioRun) QualityResult {
	falsePositives := 0
	totalNegativeCases := 0

	for _, r := range runs {
		if len(r.scenario.Expected) != 0 {
			continue
		}
		totalNegativeCases++
		falsePositives += len(r.detected)
	}

	value := 0.0
	if totalNegativeCases > 0 {
		value = float64(falsePositives) / float64(totalNegativeCases)
	}

	return QualityResult{
		Metric: MetricFalsePositiveRate,
		Value:  value,
		Details: map[string]any{
			"false_positives":      falsePositives,
			"total_negative_cases": totalNegativeCases,
			"percentage":           value * 100,
		},
	}
}

// computeFalseNegativeRate measures missed expectations over scenarios
// that expected at least one operation. Each expected entry consumes one
// matching detection when available; leftovers are misses.
func computeFalseNegativeRate(runs []scenarioRun) QualityResult {
	falseNegatives := 0
	totalPositiveCases := 0

	for _, r := range runs {
		if len(r.scenario.Expected) == 0 {
			continue
		}
		totalPositiveCases += len(r.scenario.Expected)

		remaining := detectedCounts(r.detected)
		for _, exp := range r.scenario.Expected {
			if remaining[exp.Type] > 0 {
				remaining[exp.Type]--
			} else {
				falseNegatives++
			}
		}
	}

	value := 0.0
	if totalPositiveCases > 0 {
		value = float64(falseNegatives) / float64(totalPositiveCases)
	}

	return QualityResult{
		Metric: MetricFalseNegativeRate,
		Value:  value,
		Details: map[string]any{
			"false_negatives":      falseNegatives,
			"total_positive_cases": totalPositiveCases,
			"percentage":           value * 100,
		},
	}
}
