package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeColumnHashDeterministic(t *testing.T) {
	flags := []bool{false, true, false}
	scores := []float64{0, 3.2, 0}

	first := ComputeColumnHash("amount_anomaly", flags, scores)
	second := ComputeColumnHash("amount_anomaly", flags, scores)

	assert.False(t, first.IsEmpty())
	assert.True(t, first.Equals(second))
}

func TestComputeColumnHashSensitivity(t *testing.T) {
	flags := []bool{false, true}
	scores := []float64{0, 3.2}
	base := ComputeColumnHash("amount_anomaly", flags, scores)

	assert.False(t, base.Equals(ComputeColumnHash("quantity_anomaly", flags, scores)))
	assert.False(t, base.Equals(ComputeColumnHash("amount_anomaly", []bool{true, true}, scores)))
	assert.False(t, base.Equals(ComputeColumnHash("amount_anomaly", flags, []float64{0, 3.3})))
}

func TestCombineHashesOrderMatters(t *testing.T) {
	a := NewHash([]byte("a"))
	b := NewHash([]byte("b"))

	assert.False(t, CombineHashes([]Hash{a, b}).Equals(CombineHashes([]Hash{b, a})))
	assert.True(t, CombineHashes([]Hash{a, b}).Equals(CombineHashes([]Hash{a, b})))
}
