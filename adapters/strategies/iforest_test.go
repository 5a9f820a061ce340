package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

// forestFixture is 20 clustered values plus one extreme outlier at the end
func forestFixture() []float64 {
	values := make([]float64, 0, 21)
	for i := 0; i < 20; i++ {
		values = append(values, 10+float64(i)*0.05)
	}
	return append(values, 500)
}

func TestForestAutoCutoff(t *testing.T) {
	s, err := NewIsolationForest(anomaly.DefaultForestConfig())
	require.NoError(t, err)

	values := forestFixture()
	result, err := s.Detect(values)
	require.NoError(t, err)

	require.Len(t, result.Flags, len(values))
	assert.True(t, result.Flags[20], "extreme outlier should be isolated quickly")
	assert.False(t, result.Flags[0])
	assert.False(t, result.Flags[10])
}

func TestForestContaminationCutoff(t *testing.T) {
	cfg := anomaly.DefaultForestConfig()
	cfg.Contamination = 0.05
	s, err := NewIsolationForest(cfg)
	require.NoError(t, err)

	values := forestFixture()
	result, err := s.Detect(values)
	require.NoError(t, err)

	// 5% of 21 rows rounds to a single flag, and the extreme value has the
	// highest raw isolation score
	assert.Equal(t, 1, result.AnomalyCount)
	assert.True(t, result.Flags[20])
}

func TestForestDeterministicForSeed(t *testing.T) {
	cfg := anomaly.DefaultForestConfig()
	cfg.Seed = 7

	values := forestFixture()

	first, err := mustForest(t, cfg).Detect(values)
	require.NoError(t, err)
	second, err := mustForest(t, cfg).Detect(values)
	require.NoError(t, err)

	assert.Equal(t, first.Flags, second.Flags)
	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.Threshold, second.Threshold)
}

func TestForestScoreOrientation(t *testing.T) {
	s, err := NewIsolationForest(anomaly.DefaultForestConfig())
	require.NoError(t, err)

	result, err := s.Detect(forestFixture())
	require.NoError(t, err)

	// Reported scores are negated raw scores: lower means more anomalous,
	// and every flagged row sits at or below the reported threshold
	for i, flagged := range result.Flags {
		assert.Less(t, result.Scores[i], 0.0)
		if flagged {
			assert.LessOrEqual(t, result.Scores[i], result.Threshold)
		}
	}
	assert.Less(t, result.Scores[20], result.Scores[10])
}

func TestForestTooFewValues(t *testing.T) {
	s, err := NewIsolationForest(anomaly.DefaultForestConfig())
	require.NoError(t, err)

	_, err = s.Detect([]float64{42})
	require.Error(t, err)
	assert.True(t, core.IsDataInsufficientError(err))
}

func TestForestInvalidConfig(t *testing.T) {
	cfg := anomaly.DefaultForestConfig()
	cfg.Estimators = 0
	_, err := NewIsolationForest(cfg)
	require.Error(t, err)
	assert.True(t, core.IsInvalidConfigError(err))

	cfg = anomaly.DefaultForestConfig()
	cfg.Contamination = 0.6
	_, err = NewIsolationForest(cfg)
	require.Error(t, err)
	assert.True(t, core.IsInvalidConfigError(err))
}

func mustForest(t *testing.T, cfg anomaly.ForestConfig) *IsolationForest {
	t.Helper()
	s, err := NewIsolationForest(cfg)
	require.NoError(t, err)
	return s
}
