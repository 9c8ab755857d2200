// internal/behavior/velocity.go
package behavior

// ClassifyVelocity converts timing statistics into an interaction-rate
// classification. A zero-duration session reports zero rates rather than
// dividing by zero.
func ClassifyVelocity(timing Result[TimingMetrics]) Result[VelocityMetrics] {
	if !timing.OK() {
		return Insufficient[VelocityMetrics](timing.Reason())
	}
	t := timing.Value()

	var perSecond float64
	if t.TotalDurationS > 0 {
		perSecond = float64(t.TotalClicks) / t.TotalDurationS
	}
	perMinute := perSecond * 60

	return Ok(VelocityMetrics{
		InteractionsPerSecond: round2(perSecond),
		InteractionsPerMinute: round1(perMinute),
		VelocityClass:         classifyVelocityRate(perMinute),
		PacingConsistency:     classifyPacing(t.Delays),
	})
}

// classifyVelocityRate buckets the interaction rate in clicks per minute.
func classifyVelocityRate(perMinute float64) VelocityClass {
	switch {
	case perMinute > 20:
		return VelocityVeryFast
	case perMinute > 12:
		return VelocityFast
	case perMinute > 6:
		return VelocityModerate
	case perMinute > 3:
		return VelocitySlow
	default:
		return VelocityVerySlow
	}
}

// classifyPacing buckets the coefficient of variation (variance over mean)
// of the delay sequence. At least two delays are needed for a variance.
func classifyPacing(delays []float64) PacingConsistency {
	if len(delays) < 2 {
		return PacingUnknown
	}

	m := mean(delays)
	var cv float64
	if m > 0 {
		cv = sampleVariance(delays) / m
	}

	switch {
	case cv < 0.3:
		return PacingVeryConsistent
	case cv < 0.6:
		return PacingConsistent
	case cv < 1.0:
		return PacingSomewhatVariable
	default:
		return PacingHighlyVariable
	}
}
