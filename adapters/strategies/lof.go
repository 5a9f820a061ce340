package strategies

import (
	"fmt"
	"math"
	"sort"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

// lofScoreCap bounds the LOF ratio when a point's neighborhood collapses to
// duplicates, where local reachability density is unbounded.
const lofScoreCap = 1e12

// LOF computes the local outlier factor: the ratio of a point's local density
// to the density of its n_neighbors. A ratio well above 1 means the point is
// isolated relative to its local neighborhood. Classification uses an
// explicit cutoff on the ratio rather than a contamination fraction.
type LOF struct {
	cfg anomaly.LOFConfig
}

// NewLOF creates a local-outlier-factor strategy
func NewLOF(cfg anomaly.LOFConfig) (*LOF, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &LOF{cfg: cfg}, nil
}

// Name returns the strategy identifier
func (s *LOF) Name() anomaly.StrategyName {
	return anomaly.StrategyLOF
}

// Detect scores every fitted row with its LOF ratio and flags ratios above
// the configured cutoff. Rows excluded from fitting (zeros when configured)
// are never flagged and keep the neutral score 0.
func (s *LOF) Detect(values []float64) (*anomaly.Result, error) {
	fitted, rows := fitValues(values, s.cfg.IgnoreZeros)
	if len(fitted) < s.cfg.Neighbors+1 {
		return nil, core.NewDataInsufficientError(fmt.Sprintf(
			"need at least n_neighbors+1 = %d points after exclusions, have %d",
			s.cfg.Neighbors+1, len(fitted)))
	}

	scores := lofRatios(fitted, s.cfg.Neighbors)

	result := anomaly.NewResult(len(values))
	result.Threshold = s.cfg.ScoreThreshold
	result.Fitted = len(fitted)
	for k, ratio := range scores {
		i := rows[k]
		result.Scores[i] = ratio
		if ratio > s.cfg.ScoreThreshold {
			result.Flag(i, ratio)
		}
	}
	return result, nil
}

// lofRatios computes the classic LOF over a single dimension: k-distance and
// k nearest neighbors per point, reachability distances, local reachability
// density, and finally the density ratio.
func lofRatios(xs []float64, k int) []float64 {
	n := len(xs)

	type neighbor struct {
		idx  int
		dist float64
	}
	neighbors := make([][]neighbor, n)
	kDist := make([]float64, n)

	for i := 0; i < n; i++ {
		cand := make([]neighbor, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			cand = append(cand, neighbor{idx: j, dist: math.Abs(xs[i] - xs[j])})
		}
		sort.Slice(cand, func(a, b int) bool {
			if cand[a].dist != cand[b].dist {
				return cand[a].dist < cand[b].dist
			}
			return cand[a].idx < cand[b].idx
		})
		neighbors[i] = cand[:k]
		kDist[i] = cand[k-1].dist
	}

	// Local reachability density: inverse mean reachability distance to the
	// neighborhood. A neighborhood of exact duplicates has unbounded density.
	lrd := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for _, nb := range neighbors[i] {
			sum += math.Max(kDist[nb.idx], nb.dist)
		}
		if sum == 0 {
			lrd[i] = math.Inf(1)
		} else {
			lrd[i] = float64(k) / sum
		}
	}

	ratios := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsInf(lrd[i], 1) {
			// Point sits inside a duplicate cluster: as dense as its neighbors.
			ratios[i] = 1
			continue
		}
		var sum float64
		for _, nb := range neighbors[i] {
			sum += lrd[nb.idx]
		}
		ratio := sum / float64(k) / lrd[i]
		if math.IsInf(ratio, 1) || ratio > lofScoreCap {
			ratio = lofScoreCap
		}
		ratios[i] = ratio
	}
	return ratios
}
