package frame

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads a CSV document with a header row into a Frame of string
// cells. Empty fields become missing values (nil).
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv input has no header row")
	}
	columns := records[0]
	rows := make([][]any, 0, len(records)-1)
	for _, record := range records[1:] {
		cells := make([]any, len(record))
		for i, field := range record {
			if field == "" {
				cells[i] = nil
			} else {
				cells[i] = field
			}
		}
		rows = append(rows, cells)
	}
	return New(columns, rows)
}

// WriteCSV writes the frame as CSV with a header row. Missing cells are
// written as empty fields.
func (f *Frame) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(f.columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range f.rows {
		record := make([]string, len(row))
		for i, cell := range row {
			if cell == nil {
				record[i] = ""
			} else {
				record[i] = fmt.Sprintf("%v", cell)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
