// Package transformer holds the action pipeline: structured transformation
// steps and their deterministic replay over a frame. An action is the
// payload of an accepted cleaning suggestion; a pipeline is an ordered,
// versioned list of actions mutated only by wholesale replacement.
package transformer

import (
	"github.com/thunderstroke325/mage-ai/pkg/column"
)

// ActionType identifies one kind of transformation step.
type ActionType string

const (
	ActionRemove          ActionType = "remove"
	ActionCleanColumnName ActionType = "clean_column_name"
	ActionDropDuplicate   ActionType = "drop_duplicate"
	ActionFilter          ActionType = "filter"
	ActionImpute          ActionType = "impute"
)

// Axis is the dimension an action operates on.
type Axis string

const (
	AxisColumn Axis = "column"
	AxisRow    Axis = "row"
)

// VariableTypeFeature is the only variable type currently produced: a
// reference to a dataset column.
const VariableTypeFeature = "feature"

// FeatureRef identifies a column by name and classification.
type FeatureRef struct {
	ColumnType column.Type `json:"column_type" yaml:"column_type"`
	UUID       string      `json:"uuid" yaml:"uuid"`
}

// ActionVariable lets an action resolve a column by identity rather than
// by position. The UUID always equals the owning column name.
type ActionVariable struct {
	Feature FeatureRef `json:"feature" yaml:"feature"`
	Type    string     `json:"type" yaml:"type"`
}

// Action is one structured transformation step. It is the action_payload of
// a suggestion once accepted into a pipeline; Title and Message are
// optional human-readable labels that replay never depends on.
type Action struct {
	Title           string                    `json:"title,omitempty" yaml:"title,omitempty"`
	Message         string                    `json:"message,omitempty" yaml:"message,omitempty"`
	ActionType      ActionType                `json:"action_type" yaml:"action_type"`
	ActionArguments []string                  `json:"action_arguments" yaml:"action_arguments"`
	ActionCode      string                    `json:"action_code,omitempty" yaml:"action_code,omitempty"`
	ActionOptions   map[string]any            `json:"action_options" yaml:"action_options"`
	ActionVariables map[string]ActionVariable `json:"action_variables" yaml:"action_variables"`
	Axis            Axis                      `json:"axis" yaml:"axis"`
	Outputs         []map[string]any          `json:"outputs" yaml:"outputs"`
}

// Copy returns a deep copy of the action.
func (a Action) Copy() Action {
	out := a
	out.ActionArguments = append([]string(nil), a.ActionArguments...)
	out.ActionOptions = make(map[string]any, len(a.ActionOptions))
	for k, v := range a.ActionOptions {
		out.ActionOptions[k] = v
	}
	out.ActionVariables = make(map[string]ActionVariable, len(a.ActionVariables))
	for k, v := range a.ActionVariables {
		out.ActionVariables[k] = v
	}
	out.Outputs = make([]map[string]any, len(a.Outputs))
	for i, o := range a.Outputs {
		m := make(map[string]any, len(o))
		for k, v := range o {
			m[k] = v
		}
		out.Outputs[i] = m
	}
	return out
}

// copyActions deep-copies an action list.
func copyActions(actions []Action) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = a.Copy()
	}
	return out
}
