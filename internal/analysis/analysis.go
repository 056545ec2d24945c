package analysis

import (
	"fmt"

	"github.com/thunderstroke325/mage-ai/pkg/cleaner"
	"github.com/thunderstroke325/mage-ai/pkg/column"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// Result bundles one analysis or cleaning pass over a dataset.
type Result struct {
	Frame       *frame.Frame           `json:"-"`
	ColumnTypes map[string]column.Type `json:"column_types"`
	Statistics  map[string]any         `json:"statistics"`
	Suggestions []cleaner.Suggestion   `json:"suggestions"`
	// Actions holds the payloads applied automatically during Clean;
	// empty for Analyze.
	Actions []transformer.Action `json:"actions"`
}

// Analyze profiles the frame and evaluates the cleaning rules without
// transforming anything. When columnTypes is nil the types are inferred.
func Analyze(f *frame.Frame, columnTypes map[string]column.Type) (*Result, error) {
	if columnTypes == nil {
		columnTypes = InferTypes(f)
	}
	statistics := Statistics(f, columnTypes)
	suggestions, err := cleaner.Evaluate(f, columnTypes, statistics)
	if err != nil {
		return nil, fmt.Errorf("evaluate cleaning rules: %w", err)
	}
	return &Result{
		Frame:       f.Copy(),
		ColumnTypes: columnTypes,
		Statistics:  statistics,
		Suggestions: suggestions,
		Actions:     []transformer.Action{},
	}, nil
}

// Clean profiles the frame, applies every suggested action through the
// pipeline, and re-profiles the transformed frame. The returned result
// describes the cleaned dataset; Actions records what was applied.
func Clean(f *frame.Frame, columnTypes map[string]column.Type) (*Result, error) {
	first, err := Analyze(f, columnTypes)
	if err != nil {
		return nil, err
	}

	actions := make([]transformer.Action, len(first.Suggestions))
	for i, s := range first.Suggestions {
		actions[i] = s.ActionPayload
	}
	// Suggestions reference the snapshot's column names; make the list
	// sequentially valid before replaying it.
	actions = transformer.FillTitles(reconcileActions(actions))

	cleaned, err := transformer.Transform(f, actions, true)
	if err != nil {
		return nil, fmt.Errorf("apply suggested actions: %w", err)
	}

	// Column types are re-inferred: cleaning can rename or drop columns.
	result, err := Analyze(cleaned, nil)
	if err != nil {
		return nil, err
	}
	result.Actions = actions
	return result, nil
}
