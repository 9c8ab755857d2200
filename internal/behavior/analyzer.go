// internal/behavior/analyzer.go

// Package behavior turns a raw stream of recorded user-interaction events
// from one completed session into a quantitative behavioral profile:
// pacing, decisiveness, engagement, confidence, journey efficiency, and
// spatial interaction precision.
//
// The engine is a pure, synchronous pipeline. Click events are filtered
// and sorted once, timing statistics are computed once, and every
// dependent stage consumes that same immutable snapshot. Stages with
// unmet minimum-input preconditions report an explicit insufficiency
// marker as data rather than failing; the composite BehaviorReport is
// therefore always fully populated. Analyzer instances hold no cross-call
// state, so concurrent Analyze calls on independent sessions are safe.
package behavior

import "go.uber.org/zap"

// Analyzer is the behavioral analytics engine.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an engine that logs stage outcomes to the given logger.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	return &Analyzer{logger: logger.Named("behavior")}
}

// Analyze runs the full pipeline over one session's events and returns
// the composite report. The input slice is never mutated.
func (a *Analyzer) Analyze(events []Event) *BehaviorReport {
	clicks := SortedClicks(events)

	timing := AnalyzeTiming(events)
	if !timing.OK() {
		a.logger.Debug("timing stage reported insufficient data",
			zap.Int("events", len(events)),
			zap.Int("clicks", len(clicks)))
	}

	velocity := ClassifyVelocity(timing)
	decisions := DetectDecisionPatterns(timing)
	engagement := ScoreEngagement(timing)
	confidence := AssessConfidence(timing)
	efficiency := EstimateEfficiency(timing)
	precision := AnalyzeSpatialPrecision(clicks)

	report := &BehaviorReport{
		Timing:     timing,
		Velocity:   velocity,
		Decisions:  decisions,
		Engagement: engagement,
		Confidence: confidence,
		Efficiency: efficiency,
		Precision:  precision,
		Insights:   GenerateInsights(timing, decisions, engagement, confidence, efficiency),
	}

	if timing.OK() {
		t := timing.Value()
		a.logger.Info("behavioral analysis complete",
			zap.Int("clicks", t.TotalClicks),
			zap.Float64("duration_s", t.TotalDurationS),
			zap.String("tempo", string(t.Tempo)))
	}

	return report
}
