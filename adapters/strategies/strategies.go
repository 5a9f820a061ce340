// Package strategies implements the per-column anomaly detection strategies.
//
// Every strategy consumes one numeric column as an ordered value sequence and
// produces flags plus scores positionally aligned to the input rows. Rows
// excluded from fitting (missing values, and zeros when a strategy is
// configured to ignore them) keep flag=false and score=0 so row alignment is
// never disturbed.
package strategies

import (
	"fmt"
	"math"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

// New constructs the strategy configured by the pair spec. A nil config
// pointer selects the strategy's defaults; a non-nil pointer is taken as the
// complete configuration.
func New(spec anomaly.PairSpec) (anomaly.Strategy, error) {
	switch spec.Strategy {
	case anomaly.StrategyIsolationForest:
		cfg := anomaly.DefaultForestConfig()
		if spec.Forest != nil {
			cfg = *spec.Forest
		}
		return NewIsolationForest(cfg)
	case anomaly.StrategyLOF:
		cfg := anomaly.DefaultLOFConfig()
		if spec.LOF != nil {
			cfg = *spec.LOF
		}
		return NewLOF(cfg)
	case anomaly.StrategyZScore:
		cfg := anomaly.DefaultZScoreConfig()
		if spec.ZScore != nil {
			cfg = *spec.ZScore
		}
		return NewZScore(cfg)
	case anomaly.StrategyIQR:
		cfg := anomaly.DefaultIQRConfig()
		if spec.IQR != nil {
			cfg = *spec.IQR
		}
		return NewIQR(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrStrategyUnknown, spec.Strategy)
	}
}

// fitValues selects the values a strategy fits on and maps them back to their
// source rows. Missing values (NaN) are always excluded; zeros only when
// ignoreZeros is set. The returned index slice has one entry per fitted value.
func fitValues(values []float64, ignoreZeros bool) (fitted []float64, rows []int) {
	fitted = make([]float64, 0, len(values))
	rows = make([]int, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if ignoreZeros && v == 0 {
			continue
		}
		fitted = append(fitted, v)
		rows = append(rows, i)
	}
	return fitted, rows
}
