package cleaner

import (
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// MaxNullValueRate is the empty-rate threshold above which a column is
// suggested for removal.
const MaxNullValueRate = 0.8

// RemoveColumnsWithHighEmptyRate suggests dropping columns whose
// null_value_rate statistic exceeds MaxNullValueRate.
type RemoveColumnsWithHighEmptyRate struct {
	ctx *RuleContext
}

func (r *RemoveColumnsWithHighEmptyRate) Name() string {
	return "remove_columns_with_high_empty_rate"
}

func (r *RemoveColumnsWithHighEmptyRate) Evaluate() ([]Suggestion, error) {
	var matched []string
	for _, col := range r.ctx.Columns() {
		rate, err := r.ctx.StatFloat(col, "null_value_rate")
		if err != nil {
			return nil, err
		}
		if rate > MaxNullValueRate {
			matched = append(matched, col)
		}
	}
	if len(matched) == 0 {
		return []Suggestion{}, nil
	}
	return []Suggestion{
		NewSuggestion(
			"Remove columns with high empty rate",
			"Remove columns with many missing values may increase your data quality.",
			transformer.ActionRemove,
			WithActionArguments(matched),
			WithActionVariables(r.ctx.BuildActionVariables(matched)),
		),
	}, nil
}

// RemoveColumnsWithSingleValue suggests dropping columns whose
// count_distinct statistic is exactly one.
type RemoveColumnsWithSingleValue struct {
	ctx *RuleContext
}

func (r *RemoveColumnsWithSingleValue) Name() string {
	return "remove_columns_with_single_value"
}

func (r *RemoveColumnsWithSingleValue) Evaluate() ([]Suggestion, error) {
	var matched []string
	for _, col := range r.ctx.Columns() {
		distinct, err := r.ctx.StatFloat(col, "count_distinct")
		if err != nil {
			return nil, err
		}
		if distinct == 1 {
			matched = append(matched, col)
		}
	}
	if len(matched) == 0 {
		return []Suggestion{}, nil
	}
	return []Suggestion{
		NewSuggestion(
			"Remove columns with single value",
			"Remove columns with a single unique value; they carry no signal.",
			transformer.ActionRemove,
			WithActionArguments(matched),
			WithActionVariables(r.ctx.BuildActionVariables(matched)),
		),
	}, nil
}
