package behavior

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessConfidence_WorkedExample(t *testing.T) {
	// Delays 2.0, 0.5, 6.5 with average 3.0: one quick (<1.5), one
	// hesitant (>6.0). Score 100/3 - 50/3 = 16.7.
	timing := AnalyzeTiming([]Event{clickAt(0), clickAt(2000), clickAt(2500), clickAt(9000)})

	res := AssessConfidence(timing)
	require.True(t, res.OK())

	c := res.Value()
	assert.Equal(t, 16.7, c.Score)
	assert.Equal(t, LevelVeryLow, c.Level)
	assert.Equal(t, 1, c.QuickActions)
	assert.Equal(t, 1, c.HesitationPoints)
}

func TestAssessConfidence_AllQuick(t *testing.T) {
	// Three short delays and one long one: average 2.0, quick cut 1.0.
	timing := AnalyzeTiming([]Event{
		clickAt(0), clickAt(500), clickAt(1000), clickAt(1500), clickAt(8000),
	})
	require.True(t, timing.OK())
	require.Equal(t, 2.0, timing.Value().AverageDelay)

	res := AssessConfidence(timing)
	require.True(t, res.OK())

	c := res.Value()
	assert.Equal(t, 3, c.QuickActions)
	assert.Equal(t, 1, c.HesitationPoints)
	// 0.75*100 - 0.25*50 = 62.5.
	assert.Equal(t, 62.5, c.Score)
	assert.Equal(t, LevelModerate, c.Level)
}

func TestAssessConfidence_ScoreNeverNegative(t *testing.T) {
	// One dominant hesitation with no quick actions pulls the raw score
	// below zero; the result clamps at 0.
	// Delays 4, 4, 4, 20: average 8.0, no quick actions, one delay above
	// 16.0. Raw score -12.5.
	timing := AnalyzeTiming([]Event{
		clickAt(0), clickAt(4000), clickAt(8000), clickAt(12000), clickAt(32000),
	})
	require.True(t, timing.OK())

	res := AssessConfidence(timing)
	require.True(t, res.OK())

	c := res.Value()
	assert.Zero(t, c.QuickActions)
	assert.Equal(t, 1, c.HesitationPoints)
	assert.Zero(t, c.Score)
	assert.Equal(t, LevelVeryLow, c.Level)
}

func TestAssessConfidence_PropagatesInsufficiency(t *testing.T) {
	res := AssessConfidence(AnalyzeTiming(nil))
	assert.False(t, res.OK())
	assert.Equal(t, ReasonNoTiming, res.Reason())
}

func TestClassifyConfidenceLevel(t *testing.T) {
	cases := []struct {
		score float64
		want  Level
	}{
		{90, LevelHigh},
		{75, LevelHigh},
		{74.9, LevelModerate},
		{50, LevelModerate},
		{49.9, LevelLow},
		{25, LevelLow},
		{24.9, LevelVeryLow},
		{0, LevelVeryLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classifyConfidenceLevel(tc.score), "score %v", tc.score)
	}
}
