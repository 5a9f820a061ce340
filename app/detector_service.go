package app

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"colguard/adapters/strategies"
	"colguard/domain/anomaly"
	"colguard/domain/core"
	"colguard/domain/table"
	"colguard/internal/profiling"
)

// PairState tracks one configured (column, strategy) pair through a run
type PairState struct {
	Spec   anomaly.PairSpec
	Status anomaly.PairStatus
	Result *anomaly.Result
	Err    error

	// Derived column names, assigned during the merge phase
	FlagColumn  string
	ScoreColumn string
}

// RunReport is the full output of one detection run: the summary plus a
// descriptive profile of every tested column.
type RunReport struct {
	Summary  *anomaly.Summary
	Profiles map[string]profiling.Profile
}

// DetectorService orchestrates anomaly detection over a dataset. Each pair
// runs independently: a failure is recorded in the summary and never aborts
// the remaining pairs. Detection itself has no shared mutable state, so pairs
// may execute concurrently; all table mutation happens serially afterwards.
type DetectorService struct {
	workers int
}

// Option configures a DetectorService
type Option func(*DetectorService)

// WithWorkers enables concurrent pair execution with up to n goroutines.
// The merge into the table stays serial either way.
func WithWorkers(n int) Option {
	return func(s *DetectorService) {
		s.workers = n
	}
}

// NewDetectorService creates a sequential detector service
func NewDetectorService(opts ...Option) *DetectorService {
	s := &DetectorService{workers: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes every configured pair against the table, appends the derived
// flag and score columns, and returns the run report. An empty pair set is a
// no-op producing an empty summary.
func (s *DetectorService) Run(ctx context.Context, tbl *table.Table, specs []anomaly.PairSpec) (*RunReport, error) {
	if err := tbl.Validate(); err != nil {
		return nil, fmt.Errorf("dataset invalid: %w", err)
	}

	states := make([]*PairState, len(specs))
	for i, spec := range specs {
		states[i] = &PairState{Spec: spec, Status: anomaly.StatusPending}
	}

	if s.workers > 1 {
		s.detectConcurrent(ctx, tbl, states)
	} else {
		for _, st := range states {
			s.detectOne(tbl, st)
		}
	}

	// Merge phase: all table mutation is serialized here, in pair order
	hashes := make([]core.Hash, 0, len(states))
	for _, st := range states {
		if st.Status != anomaly.StatusCompleted {
			continue
		}
		if err := s.merge(tbl, st); err != nil {
			st.Status = anomaly.StatusFailed
			st.Err = err
			continue
		}
		hashes = append(hashes, core.ComputeColumnHash(st.FlagColumn, st.Result.Flags, st.Result.Scores))
	}

	runID := core.RunID(core.NewID())
	summary := BuildSummary(runID, tbl.Name, tbl.RowCount(), states)
	summary.Fingerprint = core.CombineHashes(hashes)

	report := &RunReport{
		Summary:  summary,
		Profiles: s.profileColumns(tbl, states),
	}
	log.Printf("[Detector] run %s: %d pairs, %d failed, %d anomalies",
		runID, len(states), summary.FailedCount(), summary.TotalAnomalies())
	return report, nil
}

// detectConcurrent runs detection for all pairs with bounded concurrency.
// Each goroutine touches only its own state slot.
func (s *DetectorService) detectConcurrent(ctx context.Context, tbl *table.Table, states []*PairState) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, st := range states {
		st := st
		g.Go(func() error {
			s.detectOne(tbl, st)
			return nil
		})
	}
	// Pair failures are recorded per state, never returned
	_ = g.Wait()
}

// detectOne moves a single pair through Pending -> Running -> terminal state
func (s *DetectorService) detectOne(tbl *table.Table, st *PairState) {
	st.Status = anomaly.StatusRunning

	result, err := s.detect(tbl, st.Spec)
	if err != nil {
		st.Status = anomaly.StatusFailed
		st.Err = err
		log.Printf("[Detector] %s/%s failed: %v", st.Spec.Column, st.Spec.Strategy, err)
		return
	}
	st.Status = anomaly.StatusCompleted
	st.Result = result
}

func (s *DetectorService) detect(tbl *table.Table, spec anomaly.PairSpec) (*anomaly.Result, error) {
	values, err := tbl.NumericValues(spec.Column)
	if err != nil {
		return nil, err
	}

	strategy, err := strategies.New(spec)
	if err != nil {
		return nil, err
	}

	result, err := strategy.Detect(values)
	if err != nil {
		return nil, err
	}
	if err := result.Validate(len(values)); err != nil {
		return nil, err
	}
	return result, nil
}

// merge appends the pair's derived columns to the table
func (s *DetectorService) merge(tbl *table.Table, st *PairState) error {
	st.FlagColumn = deriveName(tbl, st.Spec, "_anomaly")
	if err := tbl.AddFlag(st.FlagColumn, st.Result.Flags); err != nil {
		return err
	}
	st.ScoreColumn = deriveName(tbl, st.Spec, "_anomaly_score")
	return tbl.AddNumeric(st.ScoreColumn, st.Result.Scores)
}

// deriveName picks the derived column name. The plain suffix is used when
// free; when the same column is tested by several strategies the strategy id
// disambiguates, and a counter covers repeated identical pairs.
func deriveName(tbl *table.Table, spec anomaly.PairSpec, suffix string) string {
	name := spec.Column + suffix
	if !tbl.HasColumn(name) {
		return name
	}
	name = fmt.Sprintf("%s%s_%s", spec.Column, suffix, spec.Strategy)
	for i := 2; tbl.HasColumn(name); i++ {
		name = fmt.Sprintf("%s%s_%s_%d", spec.Column, suffix, spec.Strategy, i)
	}
	return name
}

// profileColumns profiles each distinct tested column once
func (s *DetectorService) profileColumns(tbl *table.Table, states []*PairState) map[string]profiling.Profile {
	profiles := make(map[string]profiling.Profile)
	for _, st := range states {
		if _, done := profiles[st.Spec.Column]; done {
			continue
		}
		values, err := tbl.NumericValues(st.Spec.Column)
		if err != nil {
			continue
		}
		profile, err := profiling.Analyze(values)
		if err != nil {
			continue
		}
		profiles[st.Spec.Column] = profile
	}
	return profiles
}
