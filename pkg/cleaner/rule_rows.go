package cleaner

import (
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// RemoveDuplicateRows suggests a row-axis dedup when the global
// duplicate_row_count statistic is positive.
type RemoveDuplicateRows struct {
	ctx *RuleContext
}

func (r *RemoveDuplicateRows) Name() string {
	return "remove_duplicate_rows"
}

func (r *RemoveDuplicateRows) Evaluate() ([]Suggestion, error) {
	duplicates, err := r.ctx.GlobalStatFloat("duplicate_row_count")
	if err != nil {
		return nil, err
	}
	if duplicates <= 0 {
		return []Suggestion{}, nil
	}
	return []Suggestion{
		NewSuggestion(
			"Remove duplicate rows",
			"Duplicate rows were detected; keep the first occurrence of each.",
			transformer.ActionDropDuplicate,
			WithActionOptions(map[string]any{"keep": "first"}),
			WithAxis(transformer.AxisRow),
		),
	}, nil
}
