package anomaly

import (
	"fmt"

	"colguard/domain/core"
)

// StrategyName identifies a detection strategy
type StrategyName string

const (
	StrategyIsolationForest StrategyName = "isolation_forest"
	StrategyLOF             StrategyName = "lof"
	StrategyZScore          StrategyName = "zscore"
	StrategyIQR             StrategyName = "iqr"
)

// KnownStrategies lists every recognized strategy identifier in stable order
func KnownStrategies() []StrategyName {
	return []StrategyName{StrategyIsolationForest, StrategyLOF, StrategyZScore, StrategyIQR}
}

// Valid reports whether the name is a recognized strategy identifier
func (s StrategyName) Valid() bool {
	switch s {
	case StrategyIsolationForest, StrategyLOF, StrategyZScore, StrategyIQR:
		return true
	}
	return false
}

// Strategy fits a per-column anomaly model and produces flags plus scores.
//
// CONTRACT: the returned Result has exactly len(values) flags and scores in
// input row order. Implementations never mutate values and hold no state
// across calls; a configured strategy may be reused for multiple columns.
type Strategy interface {
	Name() StrategyName
	Detect(values []float64) (*Result, error)
}

// Result holds one strategy invocation's output: parallel flag and score
// sequences aligned to the input column, plus the count of raised flags.
type Result struct {
	Flags        []bool
	Scores       []float64
	AnomalyCount int

	// Fitted is how many values the model was actually fit on, after
	// exclusion of missing values and (when configured) zeros.
	Fitted int

	// Threshold actually applied, on the same side/scale as Scores.
	// Informational; surfaced in reports.
	Threshold float64
}

// NewResult creates a zeroed result for n rows
func NewResult(n int) *Result {
	return &Result{
		Flags:  make([]bool, n),
		Scores: make([]float64, n),
	}
}

// Flag marks row i anomalous with the given score
func (r *Result) Flag(i int, score float64) {
	if !r.Flags[i] {
		r.AnomalyCount++
	}
	r.Flags[i] = true
	r.Scores[i] = score
}

// Validate checks the result invariants against the input length
func (r *Result) Validate(n int) error {
	if len(r.Flags) != n || len(r.Scores) != n {
		return fmt.Errorf("%w: result has %d flags, %d scores for %d rows",
			core.ErrRowCountMismatch, len(r.Flags), len(r.Scores), n)
	}
	count := 0
	for _, f := range r.Flags {
		if f {
			count++
		}
	}
	if count != r.AnomalyCount {
		return fmt.Errorf("anomaly count %d does not match %d raised flags", r.AnomalyCount, count)
	}
	return nil
}

// PairStatus tracks a (column, strategy) pair through the orchestrator
type PairStatus string

const (
	StatusPending   PairStatus = "pending"
	StatusRunning   PairStatus = "running"
	StatusCompleted PairStatus = "completed"
	StatusFailed    PairStatus = "failed"
)

// SummaryEntry is one row of the run summary. Exactly one entry exists per
// configured pair, whether the pair completed or failed.
type SummaryEntry struct {
	Column            string       `json:"column"`
	Strategy          StrategyName `json:"strategy"`
	AnomalyCount      int          `json:"anomaly_count"`
	AnomalyPercentage float64      `json:"anomaly_percentage"`
	Status            PairStatus   `json:"status"`
	ErrorKind         string       `json:"error_kind,omitempty"`
	SampleSize        int          `json:"sample_size"`
}

// Summary is the ordered, immutable-once-built run report
type Summary struct {
	RunID       core.RunID     `json:"run_id"`
	Dataset     string         `json:"dataset"`
	RowCount    int            `json:"row_count"`
	Entries     []SummaryEntry `json:"entries"`
	Fingerprint core.Hash      `json:"fingerprint"`
}

// FailedCount returns the number of failed pairs
func (s *Summary) FailedCount() int {
	n := 0
	for _, e := range s.Entries {
		if e.Status == StatusFailed {
			n++
		}
	}
	return n
}

// TotalAnomalies sums anomaly counts across completed pairs
func (s *Summary) TotalAnomalies() int {
	n := 0
	for _, e := range s.Entries {
		n += e.AnomalyCount
	}
	return n
}
