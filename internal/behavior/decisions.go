// internal/behavior/decisions.go
package behavior

// Threshold multipliers relative to the average delay. A delay above 1.5x
// the average reads as deliberation; below 0.5x as a confident quick action.
const (
	decisionThresholdFactor = 1.5
	quickDecisionFactor     = 0.5
	moderateDecisionFactor  = 2.0
	complexDecisionFactor   = 3.0
)

// DetectDecisionPatterns classifies each inter-click delay as a decision
// point, a quick decision, or neutral, and derives the user's overall
// decision-making style. Thresholds are relative to the session's average
// delay as shown in the report (one decimal).
func DetectDecisionPatterns(timing Result[TimingMetrics]) Result[DecisionAnalysis] {
	if !timing.OK() {
		return Insufficient[DecisionAnalysis](timing.Reason())
	}
	t := timing.Value()

	threshold := t.AverageDelay * decisionThresholdFactor
	decisionPoints := []DecisionPoint{}
	quickDecisions := []QuickDecision{}

	for i, delay := range t.Delays {
		switch {
		case delay > threshold:
			decisionPoints = append(decisionPoints, DecisionPoint{
				InteractionNumber: i + 1,
				DelaySeconds:      round1(delay),
				Complexity:        classifyDecisionComplexity(delay, t.AverageDelay),
			})
		case delay < t.AverageDelay*quickDecisionFactor:
			quickDecisions = append(quickDecisions, QuickDecision{
				InteractionNumber: i + 1,
				DelaySeconds:      round1(delay),
			})
		}
	}

	return Ok(DecisionAnalysis{
		DecisionPoints:       decisionPoints,
		QuickDecisions:       quickDecisions,
		Style:                classifyDecisionStyle(t.Delays, t.AverageDelay),
		HesitationIndicators: len(decisionPoints),
		ConfidenceIndicators: len(quickDecisions),
	})
}

// classifyDecisionComplexity grades a decision point by how far the delay
// sits above the average.
func classifyDecisionComplexity(delay, avgDelay float64) DecisionComplexity {
	switch {
	case delay > avgDelay*complexDecisionFactor:
		return DecisionComplex
	case delay > avgDelay*moderateDecisionFactor:
		return DecisionModerate
	default:
		return DecisionSimple
	}
}

// classifyDecisionStyle derives the overall style from the share of quick
// versus slow transitions.
func classifyDecisionStyle(delays []float64, avgDelay float64) DecisionStyle {
	if len(delays) == 0 {
		return StyleUnknown
	}

	var quick, slow int
	for _, d := range delays {
		if d < avgDelay*quickDecisionFactor {
			quick++
		}
		if d > avgDelay*decisionThresholdFactor {
			slow++
		}
	}

	total := float64(len(delays))
	switch {
	case float64(quick)/total > 0.6:
		return StyleDecisive
	case float64(slow)/total > 0.4:
		return StyleAnalytical
	default:
		return StyleBalanced
	}
}
