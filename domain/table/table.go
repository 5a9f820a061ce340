package table

import (
	"fmt"
	"strconv"

	"colguard/domain/core"
)

// Kind classifies what a column holds
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
	KindFlag    Kind = "flag" // boolean derived column
)

// Column is an ordered sequence of values aligned to table rows.
// Exactly one of the value slices is populated, selected by Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Bools   []bool
	Strings []string
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	switch c.Kind {
	case KindNumeric:
		return len(c.Floats)
	case KindFlag:
		return len(c.Bools)
	default:
		return len(c.Strings)
	}
}

// Cell renders the value at row i as a string for serialization
func (c *Column) Cell(i int) string {
	switch c.Kind {
	case KindNumeric:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case KindFlag:
		return strconv.FormatBool(c.Bools[i])
	default:
		return c.Strings[i]
	}
}

// Table is a columnar dataset with rows aligned by position.
// Row index 0..N-1 is stable across all operations; derived columns are
// appended, never inserted, so original column order is preserved.
type Table struct {
	Name     string
	columns  []*Column
	rowCount int
}

// New creates an empty table expecting rowCount rows per column
func New(name string, rowCount int) *Table {
	return &Table{Name: name, rowCount: rowCount}
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return t.rowCount
}

// ColumnCount returns the number of columns including derived ones
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Header returns column names in order
func (t *Table) Header() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order
func (t *Table) Columns() []*Column {
	return t.columns
}

// HasColumn reports whether a column with the given name exists
func (t *Table) HasColumn(name string) bool {
	_, err := t.Column(name)
	return err == nil
}

// Column returns the named column
func (t *Table) Column(name string) (*Column, error) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", core.ErrColumnNotFound, name)
}

// NumericValues returns a copy of the named column's values. Callers own the
// copy, so strategies can never mutate table data through it.
func (t *Table) NumericValues(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != KindNumeric {
		return nil, core.NewTypeMismatchError(name, string(c.Kind))
	}
	values := make([]float64, len(c.Floats))
	copy(values, c.Floats)
	return values, nil
}

// AddNumeric appends a numeric column
func (t *Table) AddNumeric(name string, values []float64) error {
	if err := t.checkAppend(name, len(values)); err != nil {
		return err
	}
	t.columns = append(t.columns, &Column{Name: name, Kind: KindNumeric, Floats: values})
	return nil
}

// AddText appends a text column
func (t *Table) AddText(name string, values []string) error {
	if err := t.checkAppend(name, len(values)); err != nil {
		return err
	}
	t.columns = append(t.columns, &Column{Name: name, Kind: KindText, Strings: values})
	return nil
}

// AddFlag appends a boolean derived column
func (t *Table) AddFlag(name string, values []bool) error {
	if err := t.checkAppend(name, len(values)); err != nil {
		return err
	}
	t.columns = append(t.columns, &Column{Name: name, Kind: KindFlag, Bools: values})
	return nil
}

func (t *Table) checkAppend(name string, n int) error {
	if t.HasColumn(name) {
		return fmt.Errorf("%w: %s", core.ErrColumnNameTaken, name)
	}
	if n != t.rowCount {
		return fmt.Errorf("%w: column %s has %d rows, table has %d",
			core.ErrRowCountMismatch, name, n, t.rowCount)
	}
	return nil
}

// Row renders row i as string cells, one per column
func (t *Table) Row(i int) []string {
	cells := make([]string, len(t.columns))
	for j, c := range t.columns {
		cells[j] = c.Cell(i)
	}
	return cells
}

// Validate ensures the table is internally consistent
func (t *Table) Validate() error {
	for _, c := range t.columns {
		if c.Len() != t.rowCount {
			return fmt.Errorf("%w: column %s has %d rows, table has %d",
				core.ErrRowCountMismatch, c.Name, c.Len(), t.rowCount)
		}
	}
	return nil
}
