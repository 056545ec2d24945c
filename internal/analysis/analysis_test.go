package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderstroke325/mage-ai/pkg/frame"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

func analysisFixture(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		[]string{"First Name", "constant"},
		[][]any{
			{"a", "x"},
			{"b", "x"},
			{"a", "x"},
			{"a", "x"},
			{"b", "x"},
			{"a", "x"},
		},
	)
	require.NoError(t, err)
	return f
}

func TestAnalyze(t *testing.T) {
	f := analysisFixture(t)

	result, err := Analyze(f, nil)
	require.NoError(t, err)

	assert.Equal(t, f.Columns(), result.Frame.Columns())
	assert.NotEmpty(t, result.Suggestions)
	assert.Empty(t, result.Actions)
	assert.Contains(t, result.ColumnTypes, "First Name")
	assert.Equal(t, 6.0, result.Statistics["count"])

	// Analyze never transforms.
	assert.Equal(t, 6, result.Frame.NumRows())
	assert.True(t, result.Frame.HasColumn("constant"))
}

func TestCleanAppliesSuggestions(t *testing.T) {
	f := analysisFixture(t)

	result, err := Clean(f, nil)
	require.NoError(t, err)

	// Dirty column name cleaned, single-value column removed, duplicate
	// rows collapsed.
	assert.True(t, result.Frame.HasColumn("first_name"))
	assert.False(t, result.Frame.HasColumn("First Name"))
	assert.False(t, result.Frame.HasColumn("constant"))
	assert.Equal(t, 2, result.Frame.NumRows())

	assert.NotEmpty(t, result.Actions)
	for _, a := range result.Actions {
		assert.NotEmpty(t, a.Title)
	}

	// The input frame is untouched.
	assert.Equal(t, 6, f.NumRows())
	assert.True(t, f.HasColumn("First Name"))
}

func TestCleanSingleValueColumnWithDirtyName(t *testing.T) {
	// "City Name" trips both the name rule and the single-value rule; the
	// remove action must follow the rename through to "city_name".
	f, err := frame.New(
		[]string{"City Name", "age"},
		[][]any{
			{"nyc", "30"},
			{"nyc", "25"},
			{"nyc", "41"},
		},
	)
	require.NoError(t, err)

	result, err := Clean(f, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"age"}, result.Frame.Columns())
	assert.Equal(t, 3, result.Frame.NumRows())

	require.Len(t, result.Actions, 2)
	assert.Equal(t, transformer.ActionCleanColumnName, result.Actions[0].ActionType)
	assert.Equal(t, []string{"City Name"}, result.Actions[0].ActionArguments)
	assert.Equal(t, transformer.ActionRemove, result.Actions[1].ActionType)
	assert.Equal(t, []string{"city_name"}, result.Actions[1].ActionArguments)
}

func TestCleanImputesRenamedColumn(t *testing.T) {
	f, err := frame.New(
		[]string{"Zip Code"},
		[][]any{
			{"10001"},
			{"10002"},
			{nil},
			{"10003"},
			{"10004"},
			{"10005"},
		},
	)
	require.NoError(t, err)

	result, err := Clean(f, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"zip_code"}, result.Frame.Columns())
	assert.Equal(t, 6, result.Frame.NumRows())

	values, err := result.Frame.Values("zip_code")
	require.NoError(t, err)
	assert.NotContains(t, values, nil)
}

func TestReconcileActions(t *testing.T) {
	actions := []transformer.Action{
		{
			ActionType:      transformer.ActionCleanColumnName,
			ActionArguments: []string{"Total (USD)"},
			Axis:            transformer.AxisColumn,
		},
		{
			ActionType:      transformer.ActionRemove,
			ActionArguments: []string{"Total (USD)"},
			Axis:            transformer.AxisColumn,
			ActionVariables: map[string]transformer.ActionVariable{
				"Total (USD)": {
					Feature: transformer.FeatureRef{UUID: "Total (USD)"},
					Type:    transformer.VariableTypeFeature,
				},
			},
		},
		{
			ActionType:    transformer.ActionFilter,
			ActionOptions: map[string]any{"column": "Total (USD)", "min": 0.0},
			Axis:          transformer.AxisRow,
		},
		{
			ActionType: transformer.ActionDropDuplicate,
			Axis:       transformer.AxisRow,
		},
	}

	got := reconcileActions(actions)
	require.Len(t, got, 3)

	assert.Equal(t, transformer.ActionCleanColumnName, got[0].ActionType)
	assert.Equal(t, []string{"Total (USD)"}, got[0].ActionArguments)

	// The remove target follows the rename; its variable is rekeyed.
	assert.Equal(t, []string{"total_usd"}, got[1].ActionArguments)
	require.Contains(t, got[1].ActionVariables, "total_usd")
	assert.Equal(t, "total_usd", got[1].ActionVariables["total_usd"].Feature.UUID)

	// The filter on the removed column is dropped; the row action survives.
	assert.Equal(t, transformer.ActionDropDuplicate, got[2].ActionType)

	// The input list is untouched.
	assert.Equal(t, []string{"Total (USD)"}, actions[1].ActionArguments)
	assert.Equal(t, "Total (USD)", actions[2].ActionOptions["column"])
}

func TestCleanOnAlreadyCleanData(t *testing.T) {
	f, err := frame.New(
		[]string{"name"},
		[][]any{{"a"}, {"b"}, {"c"}},
	)
	require.NoError(t, err)

	result, err := Clean(f, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Frame.NumRows())
	assert.Equal(t, []string{"name"}, result.Frame.Columns())
}
