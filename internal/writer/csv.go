// Package writer exports parsed expense records for spreadsheet analysis.
package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/expensetrending/expensetrend/internal/models"
)

// WriteCSV writes records as CSV with a header row, using the csv tags on
// ExpenseRecord.
func WriteCSV(out io.Writer, records []models.ExpenseRecord) error {
	if err := gocsv.Marshal(&records, out); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes records to a CSV file at path.
func WriteCSVFile(path string, records []models.ExpenseRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	return WriteCSV(f, records)
}
