package strategies

import (
	"math"

	"github.com/montanaflynn/stats"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

// IQR flags values outside [Q1 - k*IQR, Q3 + k*IQR]. Scores are the distance
// from the nearest bound normalized by the IQR: 0 at or inside the bounds,
// increasing outward. When the IQR is zero the distribution is degenerate and
// the score falls back to absolute distance from the median, so no division
// by zero can occur.
type IQR struct {
	cfg anomaly.IQRConfig
}

// NewIQR creates an interquartile-range strategy
func NewIQR(cfg anomaly.IQRConfig) (*IQR, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &IQR{cfg: cfg}, nil
}

// Name returns the strategy identifier
func (s *IQR) Name() anomaly.StrategyName {
	return anomaly.StrategyIQR
}

// Detect flags rows outside the whisker bounds
func (s *IQR) Detect(values []float64) (*anomaly.Result, error) {
	fitted, rows := fitValues(values, s.cfg.IgnoreZeros)
	if len(fitted) < 4 {
		return nil, core.NewDataInsufficientError("need at least 4 values to compute quartiles")
	}

	quartiles, err := stats.Quartile(fitted)
	if err != nil {
		return nil, core.NewDataInsufficientError(err.Error())
	}
	iqr := quartiles.Q3 - quartiles.Q1
	lower := quartiles.Q1 - s.cfg.Multiplier*iqr
	upper := quartiles.Q3 + s.cfg.Multiplier*iqr

	median, err := stats.Median(fitted)
	if err != nil {
		return nil, core.NewDataInsufficientError(err.Error())
	}

	result := anomaly.NewResult(len(values))
	result.Threshold = s.cfg.Multiplier
	result.Fitted = len(fitted)
	for k, v := range fitted {
		if v >= lower && v <= upper {
			continue
		}
		i := rows[k]
		result.Flag(i, s.score(v, lower, upper, iqr, median))
	}
	return result, nil
}

func (s *IQR) score(v, lower, upper, iqr, median float64) float64 {
	if iqr == 0 {
		return math.Abs(v - median)
	}
	if v < lower {
		return (lower - v) / iqr
	}
	return (v - upper) / iqr
}
