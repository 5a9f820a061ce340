package profiling

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBasicMoments(t *testing.T) {
	p, err := Analyze([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)

	assert.Equal(t, 8, p.SampleSize)
	assert.InDelta(t, 5.0, p.Mean, 1e-9)
	assert.InDelta(t, 2.0, p.StdDev, 1e-9)
	assert.Equal(t, 2.0, p.Min)
	assert.Equal(t, 9.0, p.Max)
	assert.InDelta(t, 4.5, p.Median, 1e-9)
}

func TestAnalyzeSkipsMissing(t *testing.T) {
	p, err := Analyze([]float64{1, math.NaN(), 2, math.NaN(), 3})
	require.NoError(t, err)
	assert.Equal(t, 3, p.SampleSize)
	assert.InDelta(t, 2.0, p.Mean, 1e-9)
}

func TestAnalyzeEmpty(t *testing.T) {
	p, err := Analyze(nil)
	require.NoError(t, err)
	assert.Zero(t, p.SampleSize)
	assert.False(t, p.LikelyNormal)
}

func TestAnalyzeNormalSample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	values := make([]float64, 500)
	for i := range values {
		values[i] = 100 + 10*rng.NormFloat64()
	}

	p, err := Analyze(values)
	require.NoError(t, err)
	assert.InDelta(t, 0, p.Skewness, 0.5)
	assert.InDelta(t, 0, p.Kurtosis, 1.0)
	assert.Greater(t, p.NormalityP, 0.0)
}

func TestAnalyzeHeavySkew(t *testing.T) {
	values := make([]float64, 0, 200)
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		values = append(values, math.Exp(rng.NormFloat64()))
	}

	p, err := Analyze(values)
	require.NoError(t, err)
	assert.Greater(t, p.Skewness, 1.0)
	assert.False(t, p.LikelyNormal)
}

func TestAnalyzeConstantColumn(t *testing.T) {
	p, err := Analyze([]float64{5, 5, 5, 5, 5})
	require.NoError(t, err)
	assert.Zero(t, p.StdDev)
	assert.Zero(t, p.Skewness)
	assert.False(t, p.LikelyNormal)
}
