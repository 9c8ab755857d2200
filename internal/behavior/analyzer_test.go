package behavior

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sessionEvents is a realistic mixed-kind session fixture: clicks with and
// without coordinates interleaved with events the engine must ignore.
func sessionEvents() []Event {
	return []Event{
		{Kind: "pageload", TimeMs: 0},
		clickXY(1000, 640, 50),
		{Kind: "scroll", TimeMs: 1500},
		clickXY(3000, 655, 60),
		clickXY(4200, 700, 400),
		{Kind: "keypress", TimeMs: 5000},
		clickAt(8000),
		clickXY(9500, 1300, 450),
	}
}

func TestAnalyzer_FullReport(t *testing.T) {
	report := NewAnalyzer(zap.NewNop()).Analyze(sessionEvents())

	require.True(t, report.Timing.OK())
	require.True(t, report.Velocity.OK())
	require.True(t, report.Decisions.OK())
	require.True(t, report.Engagement.OK())
	require.True(t, report.Confidence.OK())
	require.True(t, report.Efficiency.OK())
	require.True(t, report.Precision.OK())
	assert.NotEmpty(t, report.Insights)

	timing := report.Timing.Value()
	assert.Equal(t, 5, timing.TotalClicks)
	assert.InDelta(t, 8.5, timing.TotalDurationS, 1e-9)

	// Only the four coordinate-bearing clicks feed the spatial pipeline.
	assert.Equal(t, 4, report.Precision.Value().TotalClicks)
}

func TestAnalyzer_InsufficiencyPropagation(t *testing.T) {
	// One click: every timing-dependent stage and the spatial stage
	// report markers, and the report is still fully shaped.
	report := NewAnalyzer(zap.NewNop()).Analyze([]Event{clickXY(0, 10, 10)})

	assert.False(t, report.Timing.OK())
	assert.False(t, report.Velocity.OK())
	assert.False(t, report.Decisions.OK())
	assert.False(t, report.Engagement.OK())
	assert.False(t, report.Confidence.OK())
	assert.False(t, report.Efficiency.OK())
	assert.False(t, report.Precision.OK())

	assert.Equal(t, ReasonNoTiming, report.Velocity.Reason())
	assert.Equal(t, ReasonNoCoordinates, report.Precision.Reason())
	assert.Equal(t, []string{insufficientInsight}, report.Insights)
}

func TestAnalyzer_TimingWithoutCoordinates(t *testing.T) {
	// Plenty of clicks but no coordinates: timing stages succeed while
	// the spatial stage degrades independently.
	report := NewAnalyzer(zap.NewNop()).Analyze([]Event{
		clickAt(0), clickAt(1000), clickAt(2500),
	})

	assert.True(t, report.Timing.OK())
	assert.True(t, report.Engagement.OK())
	assert.False(t, report.Precision.OK())
	assert.Equal(t, ReasonNoCoordinates, report.Precision.Reason())
}

func TestAnalyzer_Idempotent(t *testing.T) {
	analyzer := NewAnalyzer(zap.NewNop())
	events := sessionEvents()

	first, err := json.Marshal(analyzer.Analyze(events))
	require.NoError(t, err)
	second, err := json.Marshal(analyzer.Analyze(events))
	require.NoError(t, err)

	var a, b map[string]any
	require.NoError(t, json.Unmarshal(first, &a))
	require.NoError(t, json.Unmarshal(second, &b))
	assert.Empty(t, cmp.Diff(a, b))
}

func TestAnalyzer_DoesNotMutateInput(t *testing.T) {
	// Unsorted input must come back untouched; sorting happens on a copy.
	events := []Event{clickAt(9000), clickAt(0), clickAt(2500)}

	NewAnalyzer(zap.NewNop()).Analyze(events)

	assert.Equal(t, int64(9000), events[0].TimeMs)
	assert.Equal(t, int64(0), events[1].TimeMs)
	assert.Equal(t, int64(2500), events[2].TimeMs)
}

func TestBehaviorReport_MarshalShape(t *testing.T) {
	report := NewAnalyzer(zap.NewNop()).Analyze([]Event{clickAt(0)})

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Every section is present even on insufficiency, each carrying the
	// distinguished error field.
	for _, key := range []string{
		"timing_analysis", "interaction_velocity", "decision_patterns",
		"engagement_score", "confidence_indicators", "journey_efficiency",
		"precision_analytics",
	} {
		var env struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(decoded[key], &env), key)
		assert.NotEmpty(t, env.Error, key)
	}
}

func TestTimingMetrics_MarshalRoundsDelays(t *testing.T) {
	// 3 delays of 333ms marshal as 0.3 each while the in-memory slice
	// keeps full precision.
	res := AnalyzeTiming([]Event{clickAt(0), clickAt(333), clickAt(666), clickAt(999)})
	require.True(t, res.OK())

	data, err := json.Marshal(res.Value())
	require.NoError(t, err)

	var decoded struct {
		Delays        []float64 `json:"interaction_delays"`
		TotalDuration float64   `json:"total_duration_seconds"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []float64{0.3, 0.3, 0.3}, decoded.Delays)
	assert.Equal(t, 1.0, decoded.TotalDuration)

	assert.InDelta(t, 0.333, res.Value().Delays[0], 1e-9)
}

func TestResult_RoundTrip(t *testing.T) {
	ok := Ok(ConfidenceResult{Score: 62.5, Level: LevelModerate, QuickActions: 3, HesitationPoints: 1})
	data, err := json.Marshal(ok)
	require.NoError(t, err)

	var restored Result[ConfidenceResult]
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, restored.OK())
	assert.Equal(t, ok.Value(), restored.Value())

	bad := Insufficient[ConfidenceResult](ReasonNoTiming)
	data, err = json.Marshal(bad)
	require.NoError(t, err)

	require.NoError(t, json.Unmarshal(data, &restored))
	assert.False(t, restored.OK())
	assert.Equal(t, ReasonNoTiming, restored.Reason())
}
