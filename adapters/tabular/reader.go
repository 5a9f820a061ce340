// Package tabular reads and writes datasets as CSV or Excel files. It is a
// thin boundary: the only intelligence is deciding which columns are numeric,
// everything else is plumbing into and out of table.Table.
package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"colguard/domain/table"
)

// DataReader reads CSV and Excel datasets
type DataReader struct{}

// NewDataReader creates a reader handling both CSV and Excel files
func NewDataReader() *DataReader {
	return &DataReader{}
}

// Read loads the file into a table. The first row is taken as the header.
func (r *DataReader) Read(path string) (*table.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("dataset file not found: %s", path)
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readExcelRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset must have a header row and at least one data row")
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tbl, err := buildTable(name, rows)
	if err != nil {
		return nil, err
	}
	log.Printf("[DataReader] %s: %d rows, %d columns", path, tbl.RowCount(), tbl.ColumnCount())
	return tbl, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// buildTable infers one column at a time: numeric when every non-empty cell
// parses as a float (empty cells become NaN), text otherwise.
func buildTable(name string, rows [][]string) (*table.Table, error) {
	header := rows[0]
	data := rows[1:]

	tbl := table.New(name, len(data))
	for col, colName := range header {
		cells := make([]string, len(data))
		for i, row := range data {
			// Excel rows can be ragged; missing trailing cells read as empty
			if col < len(row) {
				cells[i] = strings.TrimSpace(row[col])
			}
		}

		if floats, ok := parseNumeric(cells); ok {
			if err := tbl.AddNumeric(colName, floats); err != nil {
				return nil, err
			}
			continue
		}
		if err := tbl.AddText(colName, cells); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func parseNumeric(cells []string) ([]float64, bool) {
	floats := make([]float64, len(cells))
	sawValue := false
	for i, cell := range cells {
		if cell == "" {
			floats[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		floats[i] = v
		sawValue = true
	}
	return floats, sawValue
}
