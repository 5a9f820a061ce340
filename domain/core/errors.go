package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Detection errors, one per failure class a (column, strategy) pair can hit
	ErrInvalidConfig    = errors.New("invalid strategy configuration")
	ErrDataInsufficient = errors.New("insufficient data for detection")
	ErrTypeMismatch     = errors.New("column is not numeric")

	// Lookup errors
	ErrColumnNotFound   = errors.New("column not found")
	ErrStrategyUnknown  = errors.New("unknown strategy")
	ErrRunNotFound      = errors.New("run not found")
	ErrColumnNameTaken  = errors.New("derived column name already in use")
	ErrRowCountMismatch = errors.New("row count mismatch")
)

// Error constructors with context
func NewInvalidConfigError(param string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, param, reason)
}

func NewDataInsufficientError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDataInsufficient, reason)
}

func NewTypeMismatchError(column string, kind string) error {
	return fmt.Errorf("%w: %s has kind %s", ErrTypeMismatch, column, kind)
}

// Error checking helpers
func IsInvalidConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

func IsDataInsufficientError(err error) bool {
	return errors.Is(err, ErrDataInsufficient)
}

func IsTypeMismatchError(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// ErrorKind maps a detection error to the kind reported in run summaries.
// Unrecognized errors are reported as "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, ErrDataInsufficient):
		return "data_insufficient"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrColumnNotFound):
		return "column_not_found"
	case errors.Is(err, ErrStrategyUnknown):
		return "strategy_unknown"
	default:
		return "internal"
	}
}
