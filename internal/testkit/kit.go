// Package testkit generates deterministic synthetic datasets for tests.
package testkit

import (
	"fmt"
	"math/rand"

	"colguard/domain/table"
)

// ColumnSpec describes one synthetic numeric column
type ColumnSpec struct {
	Name     string
	Mean     float64
	StdDev   float64
	Outliers []float64 // appended verbatim at the end of the column
	ZeroRate float64   // fraction of rows forced to zero
}

// Kit builds synthetic tables from a fixed seed, so every test run sees the
// same data.
type Kit struct {
	seed int64
}

// New creates a test kit with the given seed
func New(seed int64) *Kit {
	return &Kit{seed: seed}
}

// Table builds a table of rowCount rows from the column specs. Outlier values
// replace the trailing rows of their column so the row count stays uniform.
func (k *Kit) Table(name string, rowCount int, specs ...ColumnSpec) (*table.Table, error) {
	tbl := table.New(name, rowCount)
	for i, spec := range specs {
		if len(spec.Outliers) > rowCount {
			return nil, fmt.Errorf("column %s: %d outliers exceed %d rows", spec.Name, len(spec.Outliers), rowCount)
		}
		// Independent stream per column so adding a column never shifts
		// the values of the others
		rng := rand.New(rand.NewSource(k.seed + int64(i)))

		values := make([]float64, rowCount)
		for j := range values {
			values[j] = spec.Mean + spec.StdDev*rng.NormFloat64()
			if spec.ZeroRate > 0 && rng.Float64() < spec.ZeroRate {
				values[j] = 0
			}
		}
		copy(values[rowCount-len(spec.Outliers):], spec.Outliers)

		if err := tbl.AddNumeric(spec.Name, values); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// NumericTable builds a single-column table from literal values
func NumericTable(name, column string, values []float64) *table.Table {
	tbl := table.New(name, len(values))
	if err := tbl.AddNumeric(column, values); err != nil {
		panic(err)
	}
	return tbl
}
