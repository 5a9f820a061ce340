package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"colguard/domain/core"
)

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, DefaultForestConfig().Validate())
	assert.NoError(t, DefaultLOFConfig().Validate())
	assert.NoError(t, DefaultZScoreConfig().Validate())
	assert.NoError(t, DefaultIQRConfig().Validate())
}

func TestForestConfigValidate(t *testing.T) {
	cfg := DefaultForestConfig()
	cfg.Estimators = 0
	assert.True(t, core.IsInvalidConfigError(cfg.Validate()))

	cfg = DefaultForestConfig()
	cfg.Contamination = -0.1
	assert.True(t, core.IsInvalidConfigError(cfg.Validate()))

	cfg = DefaultForestConfig()
	cfg.Contamination = 0.51
	assert.True(t, core.IsInvalidConfigError(cfg.Validate()))

	// Zero contamination is auto mode, the half-open upper end is allowed
	cfg = DefaultForestConfig()
	cfg.Contamination = 0.5
	assert.NoError(t, cfg.Validate())
}

func TestLOFConfigValidate(t *testing.T) {
	cfg := DefaultLOFConfig()
	cfg.Neighbors = 0
	assert.True(t, core.IsInvalidConfigError(cfg.Validate()))

	cfg = DefaultLOFConfig()
	cfg.ScoreThreshold = 0
	assert.True(t, core.IsInvalidConfigError(cfg.Validate()))
}

func TestZScoreConfigValidate(t *testing.T) {
	cfg := DefaultZScoreConfig()
	cfg.Threshold = -3
	assert.True(t, core.IsInvalidConfigError(cfg.Validate()))
}

func TestIQRConfigValidate(t *testing.T) {
	cfg := DefaultIQRConfig()
	cfg.Multiplier = 0
	assert.True(t, core.IsInvalidConfigError(cfg.Validate()))
}
