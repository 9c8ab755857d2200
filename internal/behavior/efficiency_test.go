package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateEfficiency_WorkedExample(t *testing.T) {
	// 4 clicks over 9s against an expert estimate of 6s: score 66.7.
	timing := AnalyzeTiming([]Event{clickAt(0), clickAt(2000), clickAt(2500), clickAt(9000)})

	res := EstimateEfficiency(timing)
	require.True(t, res.OK())

	e := res.Value()
	assert.Equal(t, 66.7, e.Score)
	assert.Equal(t, EfficiencyEfficient, e.Level)
	assert.Equal(t, 9.0, e.ActualTimeS)
	assert.Equal(t, 6.0, e.EstimatedOptimalTimeS)
	assert.Equal(t, 3.0, e.TimeDifferenceS)
}

func TestEstimateEfficiency_FasterThanExpert(t *testing.T) {
	// 3 clicks in 2s beats the 4.5s expert estimate; the score caps at 100.
	res := EstimateEfficiency(AnalyzeTiming([]Event{clickAt(0), clickAt(1000), clickAt(2000)}))
	require.True(t, res.OK())

	e := res.Value()
	assert.Equal(t, 100.0, e.Score)
	assert.Equal(t, EfficiencyHighlyEfficient, e.Level)
	assert.Equal(t, -2.5, e.TimeDifferenceS)
}

func TestEstimateEfficiency_ZeroDuration(t *testing.T) {
	// A zero-duration session reports the zero sentinel instead of
	// dividing by zero.
	res := EstimateEfficiency(AnalyzeTiming([]Event{clickAt(42), clickAt(42)}))
	require.True(t, res.OK())

	e := res.Value()
	assert.Zero(t, e.Score)
	assert.Equal(t, EfficiencyInefficient, e.Level)
	assert.Zero(t, e.ActualTimeS)
	assert.Equal(t, 3.0, e.EstimatedOptimalTimeS)
}

func TestEstimateEfficiency_PropagatesInsufficiency(t *testing.T) {
	res := EstimateEfficiency(AnalyzeTiming([]Event{clickAt(1)}))
	assert.False(t, res.OK())
	assert.Equal(t, ReasonNoTiming, res.Reason())
}

func TestClassifyEfficiencyLevel(t *testing.T) {
	cases := []struct {
		score float64
		want  EfficiencyLevel
	}{
		{100, EfficiencyHighlyEfficient},
		{80, EfficiencyHighlyEfficient},
		{79.9, EfficiencyEfficient},
		{60, EfficiencyEfficient},
		{59.9, EfficiencyModeratelyEfficient},
		{40, EfficiencyModeratelyEfficient},
		{39.9, EfficiencyInefficient},
		{0, EfficiencyInefficient},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyEfficiencyLevel(tc.score), "score %v", tc.score)
	}
}
