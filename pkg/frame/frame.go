// Package frame provides the in-memory tabular dataset the cleaner and
// transformer operate on. A Frame is an ordered set of named columns over
// row-major cells; nil marks a missing value. All mutating operations
// return a new Frame and leave the receiver untouched.
package frame

import (
	"encoding/json"
	"fmt"
)

// Frame is an immutable tabular dataset.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates a Frame from column names and row-major cells.
// Every row must have exactly one cell per column, and column names must be
// unique. The input slices are copied.
func New(columns []string, rows [][]any) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, ok := index[col]; ok {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		index[col] = i
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(columns))
		}
	}
	f := &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
		rows:    make([][]any, len(rows)),
	}
	for i, row := range rows {
		f.rows[i] = append([]any(nil), row...)
	}
	return f, nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int {
	return len(f.columns)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Rows returns a copy of the row-major cells.
func (f *Frame) Rows() [][]any {
	rows := make([][]any, len(f.rows))
	for i, row := range f.rows {
		rows[i] = append([]any(nil), row...)
	}
	return rows
}

// Values returns a copy of the named column's cells.
func (f *Frame) Values(name string) ([]any, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	values := make([]any, len(f.rows))
	for r, row := range f.rows {
		values[r] = row[i]
	}
	return values, nil
}

// Cell returns the cell at the given row for the named column.
func (f *Frame) Cell(row int, name string) (any, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if row < 0 || row >= len(f.rows) {
		return nil, fmt.Errorf("row %d out of range", row)
	}
	return f.rows[row][i], nil
}

// Copy returns a deep copy of the frame. Cells themselves are scalars and
// are shared.
func (f *Frame) Copy() *Frame {
	out, _ := New(f.columns, f.rows)
	return out
}

// SelectColumns returns a new frame restricted to the named columns, in the
// order given.
func (f *Frame) SelectColumns(names ...string) (*Frame, error) {
	indices := make([]int, len(names))
	for i, name := range names {
		idx, ok := f.index[name]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		indices[i] = idx
	}
	rows := make([][]any, len(f.rows))
	for r, row := range f.rows {
		cells := make([]any, len(indices))
		for i, idx := range indices {
			cells[i] = row[idx]
		}
		rows[r] = cells
	}
	return New(names, rows)
}

// DropColumns returns a new frame without the named columns. Remaining
// columns keep their original order.
func (f *Frame) DropColumns(names ...string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if !f.HasColumn(name) {
			return nil, fmt.Errorf("unknown column %q", name)
		}
		drop[name] = true
	}
	var keep []string
	for _, col := range f.columns {
		if !drop[col] {
			keep = append(keep, col)
		}
	}
	return f.SelectColumns(keep...)
}

// RenameColumn returns a new frame with one column renamed in place.
func (f *Frame) RenameColumn(oldName, newName string) (*Frame, error) {
	if !f.HasColumn(oldName) {
		return nil, fmt.Errorf("unknown column %q", oldName)
	}
	if oldName != newName && f.HasColumn(newName) {
		return nil, fmt.Errorf("column %q already exists", newName)
	}
	columns := f.Columns()
	columns[f.index[oldName]] = newName
	return New(columns, f.rows)
}

// Filter returns a new frame containing only the rows for which keep
// returns true. The callback receives a copy of each row.
func (f *Frame) Filter(keep func(row []any) bool) *Frame {
	var rows [][]any
	for _, row := range f.rows {
		if keep(append([]any(nil), row...)) {
			rows = append(rows, row)
		}
	}
	out, _ := New(f.columns, rows)
	return out
}

// WithColumnValues returns a new frame with the named column's cells
// replaced. The replacement must have one cell per row.
func (f *Frame) WithColumnValues(name string, values []any) (*Frame, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if len(values) != len(f.rows) {
		return nil, fmt.Errorf("got %d values for %d rows", len(values), len(f.rows))
	}
	out := f.Copy()
	for r := range out.rows {
		out.rows[r][i] = values[r]
	}
	return out, nil
}

// wireFrame is the JSON form: {"columns": [...], "rows": [[...], ...]}.
type wireFrame struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// MarshalJSON implements json.Marshaler.
func (f *Frame) MarshalJSON() ([]byte, error) {
	w := wireFrame{Columns: f.columns, Rows: f.rows}
	if w.Columns == nil {
		w.Columns = []string{}
	}
	if w.Rows == nil {
		w.Rows = [][]any{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Numeric cells decode as
// float64 per encoding/json defaults.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var w wireFrame
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := New(w.Columns, w.Rows)
	if err != nil {
		return err
	}
	*f = *decoded
	return nil
}
