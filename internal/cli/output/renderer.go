// Package output renders analysis results for the terminal, as pretty
// tables or as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/thunderstroke325/mage-ai/internal/analysis"
	"github.com/thunderstroke325/mage-ai/pkg/cleaner"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
)

// Mode selects the output format.
type Mode string

const (
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
)

// Renderer writes formatted output to out; diagnostics go to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer for the given mode. Unknown modes fall
// back to tables.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode != ModeJSON {
		mode = ModeTable
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Result renders a full analysis result: column types, statistics,
// suggestions, and a data preview of up to previewRows rows.
func (r *Renderer) Result(res *analysis.Result, previewRows int) error {
	if r.mode == ModeJSON {
		return r.renderResultJSON(res)
	}

	fmt.Fprintf(r.out, "Columns: %d  Rows: %d\n\n", res.Frame.NumColumns(), res.Frame.NumRows())
	r.renderColumnTypes(res)
	fmt.Fprintln(r.out)
	r.renderStatistics(res.Statistics)
	fmt.Fprintln(r.out)
	r.Suggestions(res.Suggestions)
	if previewRows > 0 {
		fmt.Fprintln(r.out)
		r.Frame(res.Frame, previewRows)
	}
	return nil
}

// Suggestions renders the suggestion list.
func (r *Renderer) Suggestions(suggestions []cleaner.Suggestion) {
	if r.mode == ModeJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(suggestions)
		return
	}
	if len(suggestions) == 0 {
		fmt.Fprintln(r.out, "No suggestions.")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Action", "Status", "Message"})
	for i, s := range suggestions {
		t.AppendRow(table.Row{i + 1, s.Title, s.ActionPayload.ActionType, s.Status, s.Message})
	}
	t.Render()
	fmt.Fprintf(r.out, "(%d suggestions)\n", len(suggestions))
}

// Frame renders up to limit rows of the frame.
func (r *Renderer) Frame(f *frame.Frame, limit int) {
	if r.mode == ModeJSON {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		_ = enc.Encode(f)
		return
	}
	cols := f.Columns()
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	t.AppendHeader(header)

	n := f.NumRows()
	shown := n
	if limit > 0 && shown > limit {
		shown = limit
	}
	rows := f.Rows()
	for i := 0; i < shown; i++ {
		row := make(table.Row, len(cols))
		for j := range cols {
			row[j] = formatValue(rows[i][j])
		}
		t.AppendRow(row)
	}
	t.Render()
	fmt.Fprintf(r.out, "(%d of %d rows)\n", shown, n)
}

func (r *Renderer) renderColumnTypes(res *analysis.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type"})
	for _, col := range res.Frame.Columns() {
		t.AppendRow(table.Row{col, res.ColumnTypes[col]})
	}
	t.Render()
}

func (r *Renderer) renderStatistics(stats map[string]any) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Statistic", "Value"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, formatValue(stats[k])})
	}
	t.Render()
}

func (r *Renderer) renderResultJSON(res *analysis.Result) error {
	payload := struct {
		*analysis.Result
		Data *frame.Frame `json:"data"`
	}{Result: res, Data: res.Frame}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%g", f)
	}
	return fmt.Sprintf("%v", v)
}
