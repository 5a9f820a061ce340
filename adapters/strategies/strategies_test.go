package strategies

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

func TestNewSelectsStrategy(t *testing.T) {
	cases := []struct {
		name     anomaly.StrategyName
		expected anomaly.StrategyName
	}{
		{anomaly.StrategyIsolationForest, anomaly.StrategyIsolationForest},
		{anomaly.StrategyLOF, anomaly.StrategyLOF},
		{anomaly.StrategyZScore, anomaly.StrategyZScore},
		{anomaly.StrategyIQR, anomaly.StrategyIQR},
	}
	for _, tc := range cases {
		s, err := New(anomaly.PairSpec{Column: "amount", Strategy: tc.name})
		require.NoError(t, err, "strategy %s", tc.name)
		assert.Equal(t, tc.expected, s.Name())
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New(anomaly.PairSpec{Column: "amount", Strategy: "dbscan"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrStrategyUnknown))
}

func TestNewAppliesExplicitConfig(t *testing.T) {
	cfg := anomaly.ZScoreConfig{Threshold: -1}
	_, err := New(anomaly.PairSpec{
		Column:   "amount",
		Strategy: anomaly.StrategyZScore,
		ZScore:   &cfg,
	})
	require.Error(t, err)
	assert.True(t, core.IsInvalidConfigError(err))
}

func TestFitValuesExcludesMissing(t *testing.T) {
	nan := math.NaN()
	fitted, rows := fitValues([]float64{1, nan, 2, nan, 3}, false)
	assert.Equal(t, []float64{1, 2, 3}, fitted)
	assert.Equal(t, []int{0, 2, 4}, rows)
}

func TestFitValuesIgnoreZeros(t *testing.T) {
	fitted, rows := fitValues([]float64{0, 1, 0, 2, math.NaN(), 3}, true)
	assert.Equal(t, []float64{1, 2, 3}, fitted)
	assert.Equal(t, []int{1, 3, 5}, rows)
}

func TestMissingValuesNeverFlagged(t *testing.T) {
	s, err := NewZScore(anomaly.ZScoreConfig{Threshold: 2.0})
	require.NoError(t, err)

	values := []float64{1, math.NaN(), 2, 3, 4, 5, 100}
	result, err := s.Detect(values)
	require.NoError(t, err)

	assert.False(t, result.Flags[1])
	assert.Zero(t, result.Scores[1])
	assert.True(t, result.Flags[6])
	assert.Equal(t, 6, result.Fitted)
}
