package anomaly

import "colguard/domain/core"

// ForestConfig tunes the isolation-forest strategy.
// Contamination 0 means "auto": a fixed cutoff on the normalized score is
// used instead of deriving one from an expected anomaly fraction.
type ForestConfig struct {
	Estimators    int     `json:"n_estimators"`
	SampleSize    int     `json:"sample_size"`
	Contamination float64 `json:"contamination"`
	Seed          int64   `json:"seed"`
}

// DefaultForestConfig returns the isolation-forest defaults
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Estimators: 100,
		SampleSize: 256,
		Seed:       42,
	}
}

// Validate checks parameter domains
func (c ForestConfig) Validate() error {
	if c.Estimators < 1 {
		return core.NewInvalidConfigError("n_estimators", "must be >= 1")
	}
	if c.Contamination < 0 || c.Contamination > 0.5 {
		return core.NewInvalidConfigError("contamination", "must be in (0, 0.5] or 0 for auto")
	}
	if c.SampleSize < 0 {
		return core.NewInvalidConfigError("sample_size", "must be >= 0")
	}
	return nil
}

// LOFConfig tunes the local-outlier-factor strategy. Unlike the forest method
// it classifies on an explicit score cutoff, not a contamination fraction.
type LOFConfig struct {
	Neighbors      int     `json:"n_neighbors"`
	ScoreThreshold float64 `json:"score_threshold"`
	IgnoreZeros    bool    `json:"ignore_zero_values"`
}

// DefaultLOFConfig returns the LOF defaults
func DefaultLOFConfig() LOFConfig {
	return LOFConfig{
		Neighbors:      20,
		ScoreThreshold: 15,
	}
}

// Validate checks parameter domains
func (c LOFConfig) Validate() error {
	if c.Neighbors < 1 {
		return core.NewInvalidConfigError("n_neighbors", "must be >= 1")
	}
	if c.ScoreThreshold <= 0 {
		return core.NewInvalidConfigError("score_threshold", "must be > 0")
	}
	return nil
}

// ZScoreConfig tunes the Z-Score strategy. The threshold applies
// symmetrically: |z| > threshold flags the row.
type ZScoreConfig struct {
	Threshold   float64 `json:"threshold"`
	IgnoreZeros bool    `json:"ignore_zero_values"`
}

// DefaultZScoreConfig returns the Z-Score defaults
func DefaultZScoreConfig() ZScoreConfig {
	return ZScoreConfig{Threshold: 3.0}
}

// Validate checks parameter domains
func (c ZScoreConfig) Validate() error {
	if c.Threshold <= 0 {
		return core.NewInvalidConfigError("threshold", "must be > 0")
	}
	return nil
}

// IQRConfig tunes the interquartile-range strategy. The default multiplier 3
// is deliberately conservative versus the common 1.5 to cut false positives.
type IQRConfig struct {
	Multiplier  float64 `json:"multiplier"`
	IgnoreZeros bool    `json:"ignore_zero_values"`
}

// DefaultIQRConfig returns the IQR defaults
func DefaultIQRConfig() IQRConfig {
	return IQRConfig{Multiplier: 3.0}
}

// Validate checks parameter domains
func (c IQRConfig) Validate() error {
	if c.Multiplier <= 0 {
		return core.NewInvalidConfigError("multiplier", "must be > 0")
	}
	return nil
}

// PairSpec configures one (column, strategy) pair. At most one of the config
// pointers is set, matching Strategy; a nil pointer means strategy defaults.
type PairSpec struct {
	Column   string       `json:"column"`
	Strategy StrategyName `json:"strategy"`

	Forest *ForestConfig `json:"isolation_forest,omitempty"`
	LOF    *LOFConfig    `json:"lof,omitempty"`
	ZScore *ZScoreConfig `json:"zscore,omitempty"`
	IQR    *IQRConfig    `json:"iqr,omitempty"`
}
