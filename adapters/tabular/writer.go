package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"colguard/domain/table"
)

// OutputSuffix is appended to the original file name, before the extension,
// when persisting the augmented dataset.
const OutputSuffix = "_anomaly"

// ResultWriter persists augmented datasets as CSV or Excel
type ResultWriter struct{}

// NewResultWriter creates a writer handling both CSV and Excel files
func NewResultWriter() *ResultWriter {
	return &ResultWriter{}
}

// OutputPath derives the persisted file name: original name with the fixed
// suffix inserted before the extension.
func OutputPath(originalPath string) string {
	ext := filepath.Ext(originalPath)
	return strings.TrimSuffix(originalPath, ext) + OutputSuffix + ext
}

// WriteDataset writes the augmented table next to the original file and
// returns the path written.
func (w *ResultWriter) WriteDataset(tbl *table.Table, originalPath string) (string, error) {
	outPath := OutputPath(originalPath)

	var err error
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".xlsx":
		err = writeExcel(tbl, outPath)
	default:
		err = writeCSVFile(tbl, outPath)
	}
	if err != nil {
		return "", err
	}
	log.Printf("[ResultWriter] wrote %s (%d rows, %d columns)", outPath, tbl.RowCount(), tbl.ColumnCount())
	return outPath, nil
}

func writeCSVFile(tbl *table.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()
	return WriteCSV(tbl, file)
}

// WriteCSV streams the table as CSV to any writer. Used both for file output
// and for serving the augmented dataset over HTTP.
func WriteCSV(tbl *table.Table, out io.Writer) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(tbl.Header()); err != nil {
		return err
	}
	for i := 0; i < tbl.RowCount(); i++ {
		if err := writer.Write(tbl.Row(i)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeExcel(tbl *table.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, 0, tbl.ColumnCount())
	for _, name := range tbl.Header() {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i := 0; i < tbl.RowCount(); i++ {
		cells := tbl.Row(i)
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
