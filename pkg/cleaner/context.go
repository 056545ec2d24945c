package cleaner

import (
	"fmt"

	"github.com/thunderstroke325/mage-ai/pkg/column"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// RuleContext is the immutable snapshot every rule evaluates against: a
// defensively copied frame plus the caller-supplied column types and
// statistics. Rules built from the same context see identical inputs.
type RuleContext struct {
	frame       *frame.Frame
	columns     []string
	columnTypes map[string]column.Type
	statistics  map[string]any
}

// NewRuleContext snapshots the evaluation inputs. Every frame column must
// appear in the column-type map; a missing entry is a ContractError.
func NewRuleContext(f *frame.Frame, columnTypes map[string]column.Type, statistics map[string]any) (*RuleContext, error) {
	columns := f.Columns()
	types := make(map[string]column.Type, len(columnTypes))
	for col, t := range columnTypes {
		types[col] = t
	}
	for _, col := range columns {
		if _, ok := types[col]; !ok {
			return nil, &ContractError{Kind: KindColumnType, Identifier: col}
		}
	}
	stats := make(map[string]any, len(statistics))
	for k, v := range statistics {
		stats[k] = v
	}
	return &RuleContext{
		frame:       f.Copy(),
		columns:     columns,
		columnTypes: types,
		statistics:  stats,
	}, nil
}

// Frame returns the snapshot frame. Frames are immutable, so sharing the
// snapshot across rules is safe.
func (c *RuleContext) Frame() *frame.Frame {
	return c.frame
}

// Columns returns the snapshot's column names in order.
func (c *RuleContext) Columns() []string {
	return append([]string(nil), c.columns...)
}

// ColumnType returns the classification of a snapshot column.
func (c *RuleContext) ColumnType(col string) column.Type {
	return c.columnTypes[col]
}

// FilterNumericTypes projects the snapshot down to its numeric columns,
// cast to float64, with every row containing a missing cell removed.
// Column order follows the snapshot order. Cells of a numeric column that
// cannot be represented as a float count as missing.
func (c *RuleContext) FilterNumericTypes() (*frame.Frame, []string, error) {
	var numericColumns []string
	for _, col := range c.columns {
		if c.columnTypes[col].IsNumber() {
			numericColumns = append(numericColumns, col)
		}
	}
	projected, err := c.frame.SelectColumns(numericColumns...)
	if err != nil {
		return nil, nil, fmt.Errorf("project numeric columns: %w", err)
	}

	cast := projected.Rows()
	complete := make([]bool, len(cast))
	for r, row := range cast {
		complete[r] = true
		for i, cell := range row {
			v, ok := transformer.CellFloat(cell)
			if !ok {
				complete[r] = false
				break
			}
			row[i] = v
		}
	}

	var rows [][]any
	for r, row := range cast {
		if complete[r] {
			rows = append(rows, row)
		}
	}
	numeric, err := frame.New(numericColumns, rows)
	if err != nil {
		return nil, nil, err
	}
	return numeric, numericColumns, nil
}

// BuildActionVariables maps the given columns to feature descriptors used
// by actions to resolve columns by identity. The descriptor UUID always
// equals the owning column name.
func (c *RuleContext) BuildActionVariables(columns []string) map[string]transformer.ActionVariable {
	variables := make(map[string]transformer.ActionVariable, len(columns))
	for _, col := range columns {
		variables[col] = transformer.ActionVariable{
			Feature: transformer.FeatureRef{
				ColumnType: c.columnTypes[col],
				UUID:       col,
			},
			Type: transformer.VariableTypeFeature,
		}
	}
	return variables
}

// StatFloat returns the numeric statistic stored under "<col>/<name>".
// A missing key is a ContractError; a non-numeric value is a plain error.
func (c *RuleContext) StatFloat(col, name string) (float64, error) {
	return c.GlobalStatFloat(col + "/" + name)
}

// GlobalStatFloat returns a numeric statistic stored under a global key.
func (c *RuleContext) GlobalStatFloat(key string) (float64, error) {
	raw, ok := c.statistics[key]
	if !ok {
		return 0, &ContractError{Kind: KindStatistic, Identifier: key}
	}
	v, ok := transformer.CellFloat(raw)
	if !ok {
		return 0, fmt.Errorf("statistic %q is not numeric: %v", key, raw)
	}
	return v, nil
}

// Stat returns the raw statistic stored under "<col>/<name>".
func (c *RuleContext) Stat(col, name string) (any, error) {
	raw, ok := c.statistics[col+"/"+name]
	if !ok {
		return nil, &ContractError{Kind: KindStatistic, Identifier: col + "/" + name}
	}
	return raw, nil
}
