// internal/behavior/engagement.go
package behavior

// Engagement score component caps. Density contributes up to 40 points;
// consistency and completion up to 30 each.
const (
	densityScoreCap      = 40.0
	consistencyScoreCap  = 30.0
	completionScoreFixed = 30.0
)

// ScoreEngagement computes the composite engagement score from interaction
// density, pacing consistency, and completion. A fully recorded session is
// treated as completed, so the completion component is fixed.
func ScoreEngagement(timing Result[TimingMetrics]) Result[EngagementResult] {
	if !timing.OK() {
		return Insufficient[EngagementResult](timing.Reason())
	}
	t := timing.Value()

	var density float64
	if t.TotalDurationS > 0 {
		density = float64(t.TotalClicks) / t.TotalDurationS
	}
	densityScore := density * 10
	if densityScore > densityScoreCap {
		densityScore = densityScoreCap
	}

	consistencyScore := consistencyScoreCap
	if t.MaxDelay > 0 {
		consistencyScore = consistencyScoreCap - (t.DelayVariance/t.MaxDelay)*consistencyScoreCap
		if consistencyScore < 0 {
			consistencyScore = 0
		}
	}

	score := clampScore(densityScore + consistencyScore + completionScoreFixed)

	return Ok(EngagementResult{
		Score: round1(score),
		Level: classifyEngagementLevel(score),
		Breakdown: EngagementBreakdown{
			InteractionDensity: round1(densityScore),
			Consistency:        round1(consistencyScore),
			Completion:         completionScoreFixed,
		},
	})
}

func classifyEngagementLevel(score float64) Level {
	switch {
	case score >= 80:
		return LevelHigh
	case score >= 60:
		return LevelModerate
	case score >= 40:
		return LevelLow
	default:
		return LevelVeryLow
	}
}
