package cleaner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

func TestNewSuggestionDefaults(t *testing.T) {
	s := NewSuggestion("Title", "Message", transformer.ActionRemove)

	assert.Equal(t, "Title", s.Title)
	assert.Equal(t, "Message", s.Message)
	assert.Equal(t, StatusNotApplied, s.Status)
	assert.Equal(t, transformer.ActionRemove, s.ActionPayload.ActionType)
	assert.Equal(t, transformer.AxisColumn, s.ActionPayload.Axis)

	assert.NotNil(t, s.ActionPayload.ActionArguments)
	assert.Empty(t, s.ActionPayload.ActionArguments)
	assert.NotNil(t, s.ActionPayload.ActionOptions)
	assert.NotNil(t, s.ActionPayload.ActionVariables)
	assert.NotNil(t, s.ActionPayload.Outputs)
}

func TestNewSuggestionOptions(t *testing.T) {
	variables := map[string]transformer.ActionVariable{
		"age": {Feature: transformer.FeatureRef{ColumnType: "number", UUID: "age"}, Type: transformer.VariableTypeFeature},
	}
	s := NewSuggestion("T", "M", transformer.ActionFilter,
		WithActionArguments([]string{"age"}),
		WithActionCode("age >= 0"),
		WithActionOptions(map[string]any{"column": "age", "min": 0.0}),
		WithActionVariables(variables),
		WithAxis(transformer.AxisRow),
		WithOutputs([]map[string]any{{"uuid": "age"}}),
	)

	assert.Equal(t, []string{"age"}, s.ActionPayload.ActionArguments)
	assert.Equal(t, "age >= 0", s.ActionPayload.ActionCode)
	assert.Equal(t, map[string]any{"column": "age", "min": 0.0}, s.ActionPayload.ActionOptions)
	assert.Equal(t, variables, s.ActionPayload.ActionVariables)
	assert.Equal(t, transformer.AxisRow, s.ActionPayload.Axis)
	assert.Equal(t, []map[string]any{{"uuid": "age"}}, s.ActionPayload.Outputs)
}

func TestNewSuggestionDoesNotAliasInputs(t *testing.T) {
	args := []string{"a"}
	options := map[string]any{"keep": "first"}
	outputs := []map[string]any{{"uuid": "a"}}

	s := NewSuggestion("T", "M", transformer.ActionDropDuplicate,
		WithActionArguments(args),
		WithActionOptions(options),
		WithOutputs(outputs),
	)

	args[0] = "mutated"
	options["keep"] = "last"
	outputs[0]["uuid"] = "mutated"

	assert.Equal(t, "a", s.ActionPayload.ActionArguments[0])
	assert.Equal(t, "first", s.ActionPayload.ActionOptions["keep"])
	assert.Equal(t, "a", s.ActionPayload.Outputs[0]["uuid"])
}

func TestSuggestionsShareNoPayloadState(t *testing.T) {
	a := NewSuggestion("A", "", transformer.ActionRemove)
	b := NewSuggestion("B", "", transformer.ActionRemove)

	a.ActionPayload.ActionOptions["k"] = "v"
	assert.Empty(t, b.ActionPayload.ActionOptions)
}

func TestSuggestionJSONShape(t *testing.T) {
	s := NewSuggestion("T", "M", transformer.ActionRemove,
		WithActionArguments([]string{"a"}),
	)
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "not_applied", decoded["status"])

	payload, ok := decoded["action_payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "remove", payload["action_type"])
	assert.Equal(t, []any{"a"}, payload["action_arguments"])
	assert.Equal(t, "column", payload["axis"])
}
