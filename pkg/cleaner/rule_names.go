package cleaner

import (
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// CleanColumnNames suggests renaming columns whose names are not
// lower_snake_case. The executor derives the same target names with
// transformer.CleanName, so the rename mapping never travels in the
// payload.
type CleanColumnNames struct {
	ctx *RuleContext
}

func (r *CleanColumnNames) Name() string {
	return "clean_column_names"
}

func (r *CleanColumnNames) Evaluate() ([]Suggestion, error) {
	var dirty []string
	for _, col := range r.ctx.Columns() {
		if transformer.CleanName(col) != col {
			dirty = append(dirty, col)
		}
	}
	if len(dirty) == 0 {
		return []Suggestion{}, nil
	}
	return []Suggestion{
		NewSuggestion(
			"Clean dirty column names",
			"Format column names as lowercase and replace special characters with underscores.",
			transformer.ActionCleanColumnName,
			WithActionArguments(dirty),
			WithActionVariables(r.ctx.BuildActionVariables(dirty)),
		),
	}, nil
}
