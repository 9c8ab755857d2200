// internal/behavior/confidence.go
package behavior

// A delay beyond twice the average counts as hesitation for confidence
// scoring, a stricter cut than the 1.5x decision-point threshold.
const hesitationFactor = 2.0

// AssessConfidence scores the user's confidence from the ratio of quick
// transitions against hesitant ones. Quick actions push the score up at
// full weight; hesitation pulls it down at half weight.
func AssessConfidence(timing Result[TimingMetrics]) Result[ConfidenceResult] {
	if !timing.OK() {
		return Insufficient[ConfidenceResult](timing.Reason())
	}
	t := timing.Value()

	var quick, hesitant int
	for _, d := range t.Delays {
		if d < t.AverageDelay*quickDecisionFactor {
			quick++
		}
		if d > t.AverageDelay*hesitationFactor {
			hesitant++
		}
	}

	total := float64(len(t.Delays))
	quickRatio := float64(quick) / total
	hesitationRatio := float64(hesitant) / total

	score := clampScore(quickRatio*100 - hesitationRatio*50)

	return Ok(ConfidenceResult{
		Score:            round1(score),
		Level:            classifyConfidenceLevel(score),
		QuickActions:     quick,
		HesitationPoints: hesitant,
	})
}

func classifyConfidenceLevel(score float64) Level {
	switch {
	case score >= 75:
		return LevelHigh
	case score >= 50:
		return LevelModerate
	case score >= 25:
		return LevelLow
	default:
		return LevelVeryLow
	}
}
