package ports

import (
	"context"

	"colguard/domain/anomaly"
	"colguard/domain/core"
	"colguard/domain/table"
)

// DatasetReader loads a tabular dataset from a file
type DatasetReader interface {
	Read(path string) (*table.Table, error)
}

// ResultWriter persists the augmented dataset next to the original file and
// returns the path it wrote
type ResultWriter interface {
	WriteDataset(tbl *table.Table, originalPath string) (string, error)
}

// RunRepository stores run summaries for later inspection
type RunRepository interface {
	SaveRun(ctx context.Context, summary *anomaly.Summary) error
	GetRun(ctx context.Context, id core.RunID) (*anomaly.Summary, error)
	ListRuns(ctx context.Context, limit int) ([]*anomaly.Summary, error)
}
