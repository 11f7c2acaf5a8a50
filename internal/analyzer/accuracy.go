package analyzer

// computeAccuracy scores how much of each scenario's expected operation
// multiset the detector reproduced. Per scenario, every distinct expected
// type contributes min(expected, detected) correct detections, and the
// denominator grows by the larger of the two raw list lengths, so both
// misses and extras dilute the score.
func computeAccuracy(runs []scenarioRun) QualityResult {
	correct := 0
	total := 0

	for _, r := range runs {
		det := detectedCounts(r.detected)
		exp := expectedCounts(r.scenario.Expected)

		for typ, want := range exp {
			got := det[typ]
			if got < want {
				correct += got
			} else {
				correct += want
			}
		}

		if len(r.detected) > len(r.scenario.Expected) {
			total += len(r.detected)
		} else {
			total += len(r.scenario.Expected)
		}
	}

	value := 0.0
	if total > 0 {
		value = float64(correct) / float64(total)
	}

	return QualityResult{
		Metric: MetricAccuracy,
		Value:  value,
		Details: map[string]any{
			"correct_detections": correct,
			"total_detections":   total,
			"percentage":         value * 100,
		},
	}
}
