// internal/behavior/insights.go
package behavior

import (
	"fmt"
	"math"
	"strings"
)

// insufficientInsight is the single insight emitted when the timing stage
// had too little data to work with.
const insufficientInsight = "Unable to generate behavioral insights due to insufficient data"

// GenerateInsights maps the numeric stage outputs into short
// human-readable observations. It performs no new computation; when the
// timing stage signaled insufficiency the single degradation message is
// returned instead.
func GenerateInsights(
	timing Result[TimingMetrics],
	decisions Result[DecisionAnalysis],
	engagement Result[EngagementResult],
	confidence Result[ConfidenceResult],
	efficiency Result[EfficiencyResult],
) []string {
	if !timing.OK() {
		return []string{insufficientInsight}
	}

	var insights []string
	t := timing.Value()

	if t.AverageDelay > 5 {
		insights = append(insights, fmt.Sprintf(
			"User took time to consider options (average %.1fs between actions)", t.AverageDelay))
	} else if t.AverageDelay < 2 {
		insights = append(insights, fmt.Sprintf(
			"User moved quickly through the flow (%.1fs average between actions)", t.AverageDelay))
	}

	if d := decisions.Value(); decisions.OK() {
		if d.HesitationIndicators > 2 {
			insights = append(insights,
				"Multiple decision points detected - user carefully evaluated options")
		}
		if d.ConfidenceIndicators > 3 {
			insights = append(insights,
				"User showed confidence with quick successive actions")
		}
	}

	if e := engagement.Value(); engagement.OK() {
		insights = append(insights, fmt.Sprintf(
			"User engagement level: %s (%.0f/100)", e.Level, e.Score))
	}

	if c := confidence.Value(); confidence.OK() {
		if c.Level == LevelHigh || c.Level == LevelModerate {
			insights = append(insights, fmt.Sprintf(
				"User demonstrated %s confidence in their choices", strings.ToLower(string(c.Level))))
		}
	}

	if e := efficiency.Value(); efficiency.OK() {
		insights = append(insights, fmt.Sprintf(
			"Journey completion was %s", strings.ToLower(string(e.Level))))
	}

	return insights
}

// precisionInsights derives short observations from the spatial metrics.
func precisionInsights(distances, velocities []float64, usage ScreenUsage, regions []ScreenRegion) []string {
	var insights []string

	if len(distances) > 0 {
		avg := mean(distances)
		if avg < 150 {
			insights = append(insights,
				"User demonstrated precise, focused interactions with minimal cursor movement")
		} else if avg > 500 {
			insights = append(insights,
				"User exhibited broad screen navigation with extensive cursor movements")
		}
	}

	if len(velocities) > 0 {
		avg := mean(velocities)
		if avg > 1000 {
			insights = append(insights,
				"User moved quickly between interaction points, indicating confidence or urgency")
		} else if avg < 200 {
			insights = append(insights,
				"User moved deliberately and carefully between interactions")
		}
	}

	coverage := math.Sqrt(usage.CoverageX * usage.CoverageY)
	if coverage > 800 {
		insights = append(insights,
			"User explored multiple areas of the interface comprehensively")
	} else if coverage < 300 {
		insights = append(insights,
			"User remained focused within a specific interface area")
	}

	if len(regions) > 0 {
		mainContent := 0
		for _, r := range regions {
			if r == RegionMainContent {
				mainContent++
			}
		}
		if float64(mainContent)/float64(len(regions)) > 0.8 {
			insights = append(insights,
				"User primarily focused on main content area, indicating clear task orientation")
		}
	}

	return insights
}
