// internal/behavior/efficiency.go
package behavior

// expertSecondsPerInteraction is the assumed pace of an expert user who
// already knows the flow, used to estimate the optimal completion time.
const expertSecondsPerInteraction = 1.5

// EstimateEfficiency compares the actual session duration to the
// estimated expert completion time. A zero-duration session scores 0.
func EstimateEfficiency(timing Result[TimingMetrics]) Result[EfficiencyResult] {
	if !timing.OK() {
		return Insufficient[EfficiencyResult](timing.Reason())
	}
	t := timing.Value()

	optimal := float64(t.TotalClicks) * expertSecondsPerInteraction

	var score float64
	if t.TotalDurationS > 0 {
		score = clampScore(optimal / t.TotalDurationS * 100)
	}

	return Ok(EfficiencyResult{
		Score:                 round1(score),
		Level:                 classifyEfficiencyLevel(score),
		ActualTimeS:           round1(t.TotalDurationS),
		EstimatedOptimalTimeS: optimal,
		TimeDifferenceS:       round1(t.TotalDurationS - optimal),
	})
}

func classifyEfficiencyLevel(score float64) EfficiencyLevel {
	switch {
	case score >= 80:
		return EfficiencyHighlyEfficient
	case score >= 60:
		return EfficiencyEfficient
	case score >= 40:
		return EfficiencyModeratelyEfficient
	default:
		return EfficiencyInefficient
	}
}
