package analyzer

// Precision and recall match detections to expectations within each
// scenario. A match consumes one entry from the opposite counter, so a
// duplicate detection cannot satisfy the same expectation twice.

func computePrecision(runs []scenarioRun) QualityResult {
	truePositives := 0
	falsePositives := 0

	for _, r := range runs {
		remaining := expectedCounts(r.scenario.Expected)
		for _, op := range r.detected {
			typ := op.Type.String()
			if remaining[typ] > 0 {
				truePositives++
				remaining[typ]--
			} else {
				falsePositives++
			}
		}
	}

	value := 0.0
	if truePositives+falsePositives > 0 {
		value = float64(truePositives) / float64(truePositives+falsePositives)
	}

	return QualityResult{
		Metric: MetricPrecision,
		Value:  value,
		Details: map[string]any{
			"true_positives":  truePositives,
			"false_positives": falsePositives,
			"percentage":      value * 100,
		},
	}
}

func computeRecall(runs []scenarioRun) QualityResult {
	truePositives := 0
	falseNegatives := 0

	for _, r := range runs {
		remaining := detectedCounts(r.detected)
		for _, exp := range r.scenario.Expected {
			if remaining[exp.Type] > 0 {
				truePositives++
				remaining[exp.Type]--
			} else {
				falseNegatives++
			}
		}
	}

	value := 0.0
	if truePositives+falseNegatives > 0 {
		value = float64(truePositives) / float64(truePositives+falseNegatives)
	}

	return QualityResult{
		Metric: MetricRecall,
		Value:  value,
		Details: map[string]any{
			"true_positives":  truePositives,
			"false_negatives": falseNegatives,
			"percentage":      value * 100,
		},
	}
}

func computeF1(precision, recall float64) QualityResult {
	value := 0.0
	if precision+recall > 0 {
		value = 2 * (precision * recall) / (precision + recall)
	}

	return QualityResult{
		Metric: MetricF1Score,
		Value:  value,
		Details: map[string]any{
			"precision":  precision,
			"recall":     recall,
			"percentage": value * 100,
		},
	}
}
