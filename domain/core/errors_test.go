package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructorsWrapSentinels(t *testing.T) {
	assert.True(t, IsInvalidConfigError(NewInvalidConfigError("threshold", "must be > 0")))
	assert.True(t, IsDataInsufficientError(NewDataInsufficientError("constant column")))
	assert.True(t, IsTypeMismatchError(NewTypeMismatchError("region", "text")))
}

func TestErrorKindClassification(t *testing.T) {
	cases := []struct {
		err  error
		kind string
	}{
		{nil, ""},
		{NewInvalidConfigError("n_neighbors", "must be >= 1"), "invalid_config"},
		{NewDataInsufficientError("too few values"), "data_insufficient"},
		{NewTypeMismatchError("region", "text"), "type_mismatch"},
		{fmt.Errorf("%w: amount", ErrColumnNotFound), "column_not_found"},
		{fmt.Errorf("%w: %q", ErrStrategyUnknown, "dbscan"), "strategy_unknown"},
		{errors.New("something else"), "internal"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.kind, ErrorKind(tc.err))
	}
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("pair amount/zscore: %w", NewDataInsufficientError("constant column"))
	assert.Equal(t, "data_insufficient", ErrorKind(err))
}
