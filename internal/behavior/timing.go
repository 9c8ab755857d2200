// internal/behavior/timing.go
package behavior

import (
	"encoding/json"
	"sort"
)

// ReasonNoTiming is reported when fewer than two click events carry
// timestamps, which leaves nothing to measure delays between.
const ReasonNoTiming = "insufficient click events for timing analysis"

// AnalyzeTiming derives inter-click delays and their summary statistics
// from the given events. Non-click events are ignored; click events are
// sorted by timestamp (stable, so ties keep their relative order). At
// least two clicks are required.
//
// Summary statistics are stored rounded to one decimal; the delays slice
// and total duration keep full precision for downstream consumers and are
// rounded only when serialized.
func AnalyzeTiming(events []Event) Result[TimingMetrics] {
	clicks := SortedClicks(events)
	if len(clicks) < 2 {
		return Insufficient[TimingMetrics](ReasonNoTiming)
	}

	delays := make([]float64, 0, len(clicks)-1)
	for i := 1; i < len(clicks); i++ {
		delays = append(delays, float64(clicks[i].TimeMs-clicks[i-1].TimeMs)/1000)
	}

	lo, hi := minMax(delays)
	avg := round1(mean(delays))

	return Ok(TimingMetrics{
		TotalDurationS: float64(clicks[len(clicks)-1].TimeMs-clicks[0].TimeMs) / 1000,
		TotalClicks:    len(clicks),
		Delays:         delays,
		AverageDelay:   avg,
		MedianDelay:    round1(median(delays)),
		MinDelay:       round1(lo),
		MaxDelay:       round1(hi),
		DelayVariance:  round1(sampleVariance(delays)),
		Tempo:          classifyTempo(avg),
	})
}

// SortedClicks filters events to clicks and sorts them by timestamp
// ascending. The input slice is never modified.
func SortedClicks(events []Event) []Event {
	clicks := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Kind == EventClick {
			clicks = append(clicks, e)
		}
	}
	sort.SliceStable(clicks, func(i, j int) bool {
		return clicks[i].TimeMs < clicks[j].TimeMs
	})
	return clicks
}

// classifyTempo buckets the average delay between clicks.
func classifyTempo(avgDelay float64) Tempo {
	switch {
	case avgDelay < 1.5:
		return TempoRapid
	case avgDelay < 3:
		return TempoSteady
	case avgDelay < 6:
		return TempoDeliberate
	default:
		return TempoContemplative
	}
}

// MarshalJSON rounds the duration and each delay to the report's one
// decimal display precision. The in-memory values keep full precision.
func (m TimingMetrics) MarshalJSON() ([]byte, error) {
	type alias TimingMetrics
	out := alias(m)
	out.TotalDurationS = round1(m.TotalDurationS)
	out.Delays = make([]float64, len(m.Delays))
	for i, d := range m.Delays {
		out.Delays[i] = round1(d)
	}
	return json.Marshal(out)
}
