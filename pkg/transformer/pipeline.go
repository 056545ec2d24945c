package transformer

import (
	"github.com/thunderstroke325/mage-ai/pkg/frame"
)

// Pipeline is an ordered, versioned list of actions. The version of a
// pipeline is the length of its action list; replacing the list records the
// previous length so external storage can keep one snapshot per count.
type Pipeline struct {
	actions []Action
}

// NewPipeline creates a pipeline over a copy of the given action list.
func NewPipeline(actions []Action) *Pipeline {
	return &Pipeline{actions: copyActions(actions)}
}

// Actions returns a copy of the action list in order.
func (p *Pipeline) Actions() []Action {
	return copyActions(p.actions)
}

// Version is the current action-list length.
func (p *Pipeline) Version() int {
	return len(p.actions)
}

// UpdateActions replaces the action list wholesale and returns the version
// held immediately before the replacement.
func (p *Pipeline) UpdateActions(actions []Action) (prevVersion int) {
	prevVersion = len(p.actions)
	p.actions = copyActions(actions)
	return prevVersion
}

// Transform folds the frame through the stored actions in order. See
// Transform for the auto flag semantics.
func (p *Pipeline) Transform(f *frame.Frame, auto bool) (*frame.Frame, error) {
	return Transform(f, p.actions, auto)
}

// Transform folds a frame through an ordered action list, each action
// consuming the previous action's output. The input frame is never
// mutated, and any error aborts the fold without returning a partially
// transformed frame.
//
// auto=true replays a complete recorded history verbatim; resolution
// errors surface at the failing action. auto=false is for caller-curated
// subsets: column references are checked across the whole list up front, so
// a bad curation fails before any transformation work starts. The fold
// itself is identical in both modes, and no action is ever skipped by
// status; callers pass exactly the actions they want applied.
func Transform(f *frame.Frame, actions []Action, auto bool) (*frame.Frame, error) {
	if !auto {
		if err := preflight(f, actions); err != nil {
			return nil, err
		}
	}
	out := f.Copy()
	for _, action := range actions {
		next, err := applyAction(out, action)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// preflight walks the action list tracking column-level effects (removes
// and renames) without touching rows, and reports the first action whose
// arguments cannot resolve.
func preflight(f *frame.Frame, actions []Action) error {
	columns := make(map[string]bool)
	for _, col := range f.Columns() {
		columns[col] = true
	}
	for _, action := range actions {
		for _, col := range action.ActionArguments {
			if !columns[col] {
				return &ResolutionError{ActionType: action.ActionType, Column: col}
			}
		}
		switch action.ActionType {
		case ActionRemove:
			for _, col := range action.ActionArguments {
				delete(columns, col)
			}
		case ActionCleanColumnName:
			for _, col := range action.ActionArguments {
				delete(columns, col)
				columns[CleanName(col)] = true
			}
		}
	}
	return nil
}
