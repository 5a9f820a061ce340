package table

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colguard/domain/core"
)

func TestAddColumnsPreserveOrder(t *testing.T) {
	tbl := New("orders", 3)
	require.NoError(t, tbl.AddNumeric("amount", []float64{1, 2, 3}))
	require.NoError(t, tbl.AddText("region", []string{"north", "south", "east"}))
	require.NoError(t, tbl.AddFlag("amount_anomaly", []bool{false, false, true}))

	assert.Equal(t, []string{"amount", "region", "amount_anomaly"}, tbl.Header())
	assert.Equal(t, 3, tbl.ColumnCount())
	assert.Equal(t, 3, tbl.RowCount())
}

func TestAddColumnRejectsTakenName(t *testing.T) {
	tbl := New("orders", 2)
	require.NoError(t, tbl.AddNumeric("amount", []float64{1, 2}))

	err := tbl.AddNumeric("amount", []float64{3, 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrColumnNameTaken))
}

func TestAddColumnRejectsRowCountMismatch(t *testing.T) {
	tbl := New("orders", 3)
	err := tbl.AddNumeric("amount", []float64{1, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrRowCountMismatch))
}

func TestNumericValuesReturnsCopy(t *testing.T) {
	tbl := New("orders", 3)
	require.NoError(t, tbl.AddNumeric("amount", []float64{1, 2, 3}))

	values, err := tbl.NumericValues("amount")
	require.NoError(t, err)
	values[0] = 999

	again, err := tbl.NumericValues("amount")
	require.NoError(t, err)
	assert.Equal(t, 1.0, again[0])
}

func TestNumericValuesTypeMismatch(t *testing.T) {
	tbl := New("orders", 2)
	require.NoError(t, tbl.AddText("region", []string{"north", "south"}))

	_, err := tbl.NumericValues("region")
	require.Error(t, err)
	assert.True(t, core.IsTypeMismatchError(err))
}

func TestNumericValuesUnknownColumn(t *testing.T) {
	tbl := New("orders", 2)
	_, err := tbl.NumericValues("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))
}

func TestRowRendersCells(t *testing.T) {
	tbl := New("orders", 2)
	require.NoError(t, tbl.AddNumeric("amount", []float64{1.5, math.NaN()}))
	require.NoError(t, tbl.AddText("region", []string{"north", "south"}))
	require.NoError(t, tbl.AddFlag("flagged", []bool{true, false}))

	assert.Equal(t, []string{"1.5", "north", "true"}, tbl.Row(0))
	assert.Equal(t, []string{"NaN", "south", "false"}, tbl.Row(1))
}

func TestValidate(t *testing.T) {
	tbl := New("orders", 2)
	require.NoError(t, tbl.AddNumeric("amount", []float64{1, 2}))
	assert.NoError(t, tbl.Validate())
}
