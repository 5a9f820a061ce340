package strategies

import (
	"math"
	"math/rand"
	"sort"

	"colguard/domain/anomaly"
	"colguard/domain/core"
)

// autoScoreCutoff is the raw isolation-score cutoff applied when
// contamination is "auto" (zero). Raw scores live in (0, 1] with higher
// meaning more anomalous; typical inliers score near 0.5.
const autoScoreCutoff = 0.6

// IsolationForest fits a randomized ensemble of isolation trees over the
// column. A point isolated in few random splits is anomalous. All randomness
// flows from the configured seed, so identical configuration over identical
// input yields identical output.
type IsolationForest struct {
	cfg anomaly.ForestConfig
}

// NewIsolationForest creates an isolation-forest strategy
func NewIsolationForest(cfg anomaly.ForestConfig) (*IsolationForest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &IsolationForest{cfg: cfg}, nil
}

// Name returns the strategy identifier
func (s *IsolationForest) Name() anomaly.StrategyName {
	return anomaly.StrategyIsolationForest
}

// Detect fits the ensemble and classifies each row. Reported scores are
// sign-normalized: lower (more negative) means more anomalous, so a flagged
// row always scores at or below the reported threshold.
func (s *IsolationForest) Detect(values []float64) (*anomaly.Result, error) {
	fitted, rows := fitValues(values, false)
	if len(fitted) < 2 {
		return nil, core.NewDataInsufficientError("need at least 2 values to build isolation trees")
	}

	forest := s.fit(fitted)
	raw := forest.scores(fitted)

	cutoff := autoScoreCutoff
	if s.cfg.Contamination > 0 {
		cutoff = percentile(raw, 100*(1-s.cfg.Contamination))
	}

	result := anomaly.NewResult(len(values))
	result.Threshold = -cutoff
	result.Fitted = len(fitted)
	for k, sc := range raw {
		i := rows[k]
		result.Scores[i] = -sc
		if sc > cutoff {
			result.Flag(i, -sc)
		}
	}
	return result, nil
}

// forestModel is a fitted ensemble over one column
type forestModel struct {
	trees         []*forestNode
	avgPathLength float64
}

// forestNode is a node in an isolation tree. Leaves have nil children and
// record how many samples reached them.
type forestNode struct {
	splitValue float64
	left       *forestNode
	right      *forestNode
	size       int
}

func (s *IsolationForest) fit(data []float64) *forestModel {
	rng := rand.New(rand.NewSource(s.cfg.Seed))

	sampleSize := s.cfg.SampleSize
	if sampleSize <= 0 {
		sampleSize = anomaly.DefaultForestConfig().SampleSize
	}
	if sampleSize > len(data) {
		sampleSize = len(data)
	}
	maxDepth := int(math.Ceil(math.Log2(float64(sampleSize))))
	if maxDepth < 1 {
		maxDepth = 1
	}

	model := &forestModel{
		trees:         make([]*forestNode, s.cfg.Estimators),
		avgPathLength: averagePathLength(float64(sampleSize)),
	}
	for i := range model.trees {
		// Subsample without replacement
		indices := rng.Perm(len(data))[:sampleSize]
		sample := make([]float64, sampleSize)
		for j, idx := range indices {
			sample[j] = data[idx]
		}
		model.trees[i] = buildNode(sample, 0, maxDepth, rng)
	}
	return model
}

func buildNode(data []float64, depth, maxDepth int, rng *rand.Rand) *forestNode {
	n := len(data)
	if depth >= maxDepth || n <= 1 {
		return &forestNode{size: n}
	}

	minVal, maxVal := data[0], data[0]
	for _, v := range data[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == maxVal {
		return &forestNode{size: n}
	}

	splitValue := minVal + rng.Float64()*(maxVal-minVal)

	var leftData, rightData []float64
	for _, v := range data {
		if v < splitValue {
			leftData = append(leftData, v)
		} else {
			rightData = append(rightData, v)
		}
	}

	return &forestNode{
		splitValue: splitValue,
		left:       buildNode(leftData, depth+1, maxDepth, rng),
		right:      buildNode(rightData, depth+1, maxDepth, rng),
	}
}

// scores returns the raw anomaly score 2^(-E(path)/c(n)) per value.
// Higher means isolated sooner, hence more anomalous.
func (m *forestModel) scores(data []float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		var totalPath float64
		for _, tree := range m.trees {
			totalPath += pathLength(v, tree, 0)
		}
		avgPath := totalPath / float64(len(m.trees))
		out[i] = math.Pow(2, -avgPath/m.avgPathLength)
	}
	return out
}

func pathLength(v float64, n *forestNode, depth int) float64 {
	if n.left == nil && n.right == nil {
		// Expected remaining path length for the samples pooled in this leaf
		return float64(depth) + averagePathLength(float64(n.size))
	}
	if v < n.splitValue {
		return pathLength(v, n.left, depth+1)
	}
	return pathLength(v, n.right, depth+1)
}

// averagePathLength is c(n), the average path length of unsuccessful BST
// search: 2*H(n-1) - 2*(n-1)/n with the harmonic number approximated via the
// Euler-Mascheroni constant.
func averagePathLength(n float64) float64 {
	if n <= 1 {
		return 0
	}
	return 2*(math.Log(n-1)+0.5772156649) - 2*(n-1)/n
}

// percentile returns the p-th percentile of data without modifying it
func percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}
