package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"colguard/domain/anomaly"
	"colguard/domain/core"
	"colguard/ports"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// EnsureSchema creates the run-history table when it does not exist yet
func EnsureSchema(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS detection_runs (
		id TEXT PRIMARY KEY,
		dataset TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		entries JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create detection_runs table: %w", err)
	}
	return nil
}

// SaveRun inserts a run summary
func (r *runRepository) SaveRun(ctx context.Context, summary *anomaly.Summary) error {
	entriesJSON, err := json.Marshal(summary.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal summary entries: %w", err)
	}

	query := `INSERT INTO detection_runs (id, dataset, row_count, fingerprint, entries)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query,
		summary.RunID.String(), summary.Dataset, summary.RowCount,
		summary.Fingerprint.String(), entriesJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetRun retrieves a run summary by ID
func (r *runRepository) GetRun(ctx context.Context, id core.RunID) (*anomaly.Summary, error) {
	query := `SELECT id, dataset, row_count, fingerprint, entries
		FROM detection_runs WHERE id = $1`

	summary, err := r.scanRun(r.db.QueryRowxContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
	}
	return summary, err
}

// ListRuns retrieves the most recent run summaries
func (r *runRepository) ListRuns(ctx context.Context, limit int) ([]*anomaly.Summary, error) {
	query := `SELECT id, dataset, row_count, fingerprint, entries
		FROM detection_runs ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []*anomaly.Summary
	for rows.Next() {
		summary, err := r.scanRun(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *runRepository) scanRun(row rowScanner) (*anomaly.Summary, error) {
	var (
		summary     anomaly.Summary
		id          string
		fingerprint string
		entriesJSON []byte
	)
	if err := row.Scan(&id, &summary.Dataset, &summary.RowCount, &fingerprint, &entriesJSON); err != nil {
		return nil, err
	}
	summary.RunID = core.RunID(id)
	summary.Fingerprint = core.Hash(fingerprint)
	if err := json.Unmarshal(entriesJSON, &summary.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary entries: %w", err)
	}
	return &summary, nil
}
