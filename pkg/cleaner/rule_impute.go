package cleaner

import (
	"fmt"

	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// MaxImputeNullRate is the highest empty rate a column may have and still
// be worth imputing; above it the high-empty-rate rule takes over.
const MaxImputeNullRate = 0.3

// ImputeValues suggests filling missing cells in columns with a low empty
// rate: numeric columns with their average, other columns with their mode.
// The fill value is computed here and carried in the payload so replay
// never recomputes it against a different dataset.
type ImputeValues struct {
	ctx *RuleContext
}

func (r *ImputeValues) Name() string {
	return "impute_values"
}

func (r *ImputeValues) Evaluate() ([]Suggestion, error) {
	suggestions := []Suggestion{}
	for _, col := range r.ctx.Columns() {
		rate, err := r.ctx.StatFloat(col, "null_value_rate")
		if err != nil {
			return nil, err
		}
		if rate <= 0 || rate > MaxImputeNullRate {
			continue
		}

		var (
			strategy transformer.ImputeStrategy
			value    any
		)
		if r.ctx.ColumnType(col).IsNumber() {
			avg, err := r.ctx.StatFloat(col, "average")
			if err != nil {
				return nil, err
			}
			strategy, value = transformer.ImputeAverage, avg
		} else {
			mode, err := r.ctx.Stat(col, "mode")
			if err != nil {
				return nil, err
			}
			if mode == nil {
				continue
			}
			strategy, value = transformer.ImputeMode, mode
		}

		suggestions = append(suggestions, NewSuggestion(
			fmt.Sprintf("Fill in missing values in %s", col),
			fmt.Sprintf("Fill missing cells of %s using its %s.", col, strategy),
			transformer.ActionImpute,
			WithActionArguments([]string{col}),
			WithActionOptions(map[string]any{
				"strategy": string(strategy),
				"value":    value,
			}),
			WithActionVariables(r.ctx.BuildActionVariables([]string{col})),
		))
	}
	return suggestions, nil
}
