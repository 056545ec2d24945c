// Package cleaner inspects a dataset's column types and statistics and
// proposes structured cleaning transformations. An ordered registry of
// rules evaluates one immutable snapshot of (frame, column types,
// statistics) and emits suggestions whose payloads the transformer package
// can replay.
package cleaner

import (
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// Suggestion statuses. Newly built suggestions are always not_applied.
const (
	StatusNotApplied = "not_applied"
	StatusCompleted  = "completed"
)

// Suggestion is a proposed, not-yet-applied cleaning action.
type Suggestion struct {
	Title         string             `json:"title"`
	Message       string             `json:"message"`
	Status        string             `json:"status"`
	ActionPayload transformer.Action `json:"action_payload"`
}

// SuggestionOption sets an optional field of a suggestion's payload.
type SuggestionOption func(*transformer.Action)

// WithActionArguments sets the payload's ordered column arguments.
func WithActionArguments(args []string) SuggestionOption {
	return func(a *transformer.Action) {
		a.ActionArguments = append([]string(nil), args...)
	}
}

// WithActionCode attaches an opaque code string to the payload.
func WithActionCode(code string) SuggestionOption {
	return func(a *transformer.Action) {
		a.ActionCode = code
	}
}

// WithActionOptions sets the payload's options mapping.
func WithActionOptions(options map[string]any) SuggestionOption {
	return func(a *transformer.Action) {
		a.ActionOptions = make(map[string]any, len(options))
		for k, v := range options {
			a.ActionOptions[k] = v
		}
	}
}

// WithActionVariables sets the payload's column descriptors.
func WithActionVariables(variables map[string]transformer.ActionVariable) SuggestionOption {
	return func(a *transformer.Action) {
		a.ActionVariables = make(map[string]transformer.ActionVariable, len(variables))
		for k, v := range variables {
			a.ActionVariables[k] = v
		}
	}
}

// WithAxis sets the payload's axis.
func WithAxis(axis transformer.Axis) SuggestionOption {
	return func(a *transformer.Action) {
		a.Axis = axis
	}
}

// WithOutputs sets the payload's ordered outputs.
func WithOutputs(outputs []map[string]any) SuggestionOption {
	return func(a *transformer.Action) {
		a.Outputs = make([]map[string]any, len(outputs))
		for i, o := range outputs {
			m := make(map[string]any, len(o))
			for k, v := range o {
				m[k] = v
			}
			a.Outputs[i] = m
		}
	}
}

// NewSuggestion assembles a suggestion record. Status is always
// StatusNotApplied, axis defaults to column, and every unspecified
// collection is freshly allocated so no two suggestions share payload
// state.
func NewSuggestion(title, message string, actionType transformer.ActionType, opts ...SuggestionOption) Suggestion {
	payload := transformer.Action{
		ActionType:      actionType,
		ActionArguments: []string{},
		ActionOptions:   map[string]any{},
		ActionVariables: map[string]transformer.ActionVariable{},
		Axis:            transformer.AxisColumn,
		Outputs:         []map[string]any{},
	}
	for _, opt := range opts {
		opt(&payload)
	}
	return Suggestion{
		Title:         title,
		Message:       message,
		Status:        StatusNotApplied,
		ActionPayload: payload,
	}
}
