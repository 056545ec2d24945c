package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformEmptyListIsIdentity(t *testing.T) {
	f := newFrame(t, []string{"a", "b"}, [][]any{{1.0, "x"}, {nil, "y"}})

	for _, auto := range []bool{true, false} {
		out, err := Transform(f, nil, auto)
		require.NoError(t, err)
		assert.Equal(t, f.Columns(), out.Columns())
		assert.Equal(t, f.Rows(), out.Rows())
	}
}

func TestTransformFoldsInOrder(t *testing.T) {
	f := newFrame(t, []string{"User ID", "score"}, [][]any{{"u1", 1.0}})

	// The second action only resolves against the first action's output.
	actions := []Action{
		{ActionType: ActionCleanColumnName, ActionArguments: []string{"User ID"}},
		{ActionType: ActionRemove, ActionArguments: []string{"user_id"}},
	}

	out, err := Transform(f, actions, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"score"}, out.Columns())

	reversed := []Action{actions[1], actions[0]}
	_, err = Transform(f, reversed, false)
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "user_id", resErr.Column)
}

func TestTransformNeverMutatesInput(t *testing.T) {
	f := newFrame(t, []string{"a", "b"}, [][]any{{1.0, 2.0}})

	actions := []Action{
		{ActionType: ActionRemove, ActionArguments: []string{"a"}},
		{ActionType: ActionRemove, ActionArguments: []string{"ghost"}},
	}
	_, err := Transform(f, actions, true)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Columns())
}

func TestTransformPreflight(t *testing.T) {
	f := newFrame(t, []string{"First Name", "age"}, [][]any{{"a", 1.0}})

	t.Run("rename effects are tracked", func(t *testing.T) {
		actions := []Action{
			{ActionType: ActionCleanColumnName, ActionArguments: []string{"First Name"}},
			{ActionType: ActionImpute, ActionArguments: []string{"first_name"}, ActionOptions: map[string]any{"value": "n/a"}},
		}
		out, err := Transform(f, actions, false)
		require.NoError(t, err)
		assert.True(t, out.HasColumn("first_name"))
	})

	t.Run("remove effects are tracked", func(t *testing.T) {
		actions := []Action{
			{ActionType: ActionRemove, ActionArguments: []string{"age"}},
			{ActionType: ActionImpute, ActionArguments: []string{"age"}, ActionOptions: map[string]any{"value": 0.0}},
		}
		_, err := Transform(f, actions, false)
		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, ActionImpute, resErr.ActionType)
		assert.Equal(t, "age", resErr.Column)
	})

	t.Run("auto mode skips the upfront check", func(t *testing.T) {
		// With auto=true the same list fails during the fold instead, at
		// the failing action.
		actions := []Action{
			{ActionType: ActionRemove, ActionArguments: []string{"age"}},
			{ActionType: ActionImpute, ActionArguments: []string{"age"}, ActionOptions: map[string]any{"value": 0.0}},
		}
		_, err := Transform(f, actions, true)
		var resErr *ResolutionError
		require.ErrorAs(t, err, &resErr)
	})
}

func TestPipelineVersioning(t *testing.T) {
	p := NewPipeline(nil)
	assert.Equal(t, 0, p.Version())

	first := []Action{
		{ActionType: ActionRemove, ActionArguments: []string{"a"}},
		{ActionType: ActionDropDuplicate},
	}
	prev := p.UpdateActions(first)
	assert.Equal(t, 0, prev)
	assert.Equal(t, 2, p.Version())

	second := []Action{{ActionType: ActionDropDuplicate}}
	prev = p.UpdateActions(second)
	assert.Equal(t, 2, prev)
	assert.Equal(t, 1, p.Version())
}

func TestPipelineCopiesActions(t *testing.T) {
	actions := []Action{{ActionType: ActionRemove, ActionArguments: []string{"a"}}}
	p := NewPipeline(actions)

	actions[0].ActionArguments[0] = "mutated"
	assert.Equal(t, "a", p.Actions()[0].ActionArguments[0])

	got := p.Actions()
	got[0].ActionArguments[0] = "mutated"
	assert.Equal(t, "a", p.Actions()[0].ActionArguments[0])
}

func TestPipelineTransform(t *testing.T) {
	f := newFrame(t, []string{"a", "b"}, [][]any{{1.0, 2.0}})
	p := NewPipeline([]Action{{ActionType: ActionRemove, ActionArguments: []string{"a"}}})

	out, err := p.Transform(f, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, out.Columns())
}
