package strategies

import (
	"math"

	"github.com/montanaflynn/stats"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

// ZScore flags values whose distance from the column mean exceeds a multiple
// of the standard deviation. Population standard deviation is used, matching
// the usual definition of the statistic.
//
// Reliability depends on the column being approximately normal; under heavy
// skew the threshold loses its sigma interpretation. That is informational,
// not enforced.
type ZScore struct {
	cfg anomaly.ZScoreConfig
}

// NewZScore creates a Z-Score strategy
func NewZScore(cfg anomaly.ZScoreConfig) (*ZScore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ZScore{cfg: cfg}, nil
}

// Name returns the strategy identifier
func (s *ZScore) Name() anomaly.StrategyName {
	return anomaly.StrategyZScore
}

// Detect scores every row as (v - mean) / stddev and flags |z| > threshold
func (s *ZScore) Detect(values []float64) (*anomaly.Result, error) {
	fitted, rows := fitValues(values, s.cfg.IgnoreZeros)
	if len(fitted) < 2 {
		return nil, core.NewDataInsufficientError("need at least 2 values to estimate spread")
	}

	mean, err := stats.Mean(fitted)
	if err != nil {
		return nil, core.NewDataInsufficientError(err.Error())
	}
	stdDev, err := stats.StandardDeviation(fitted)
	if err != nil {
		return nil, core.NewDataInsufficientError(err.Error())
	}
	if stdDev == 0 {
		return nil, core.NewDataInsufficientError("zero standard deviation (constant column)")
	}

	result := anomaly.NewResult(len(values))
	result.Threshold = s.cfg.Threshold
	result.Fitted = len(fitted)
	for k, v := range fitted {
		z := (v - mean) / stdDev
		i := rows[k]
		result.Scores[i] = z
		if math.Abs(z) > s.cfg.Threshold {
			result.Flag(i, z)
		}
	}
	return result, nil
}
