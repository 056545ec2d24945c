package analysis

import (
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// reconcileActions rewrites a suggested action list so it replays cleanly
// in order. Every rule evaluates the same snapshot, so suggestions name
// columns as the snapshot had them; once an earlier action renames or
// removes a column, a later action would reference a name that no longer
// exists. Renamed targets are rewritten through the same derivation the
// rename executor uses, and actions whose targets were all removed are
// dropped from the list.
func reconcileActions(actions []transformer.Action) []transformer.Action {
	renamed := map[string]string{}
	removed := map[string]bool{}
	resolve := func(col string) string {
		if to, ok := renamed[col]; ok {
			return to
		}
		return col
	}

	out := make([]transformer.Action, 0, len(actions))
	for _, action := range actions {
		a := action.Copy()

		args := make([]string, 0, len(a.ActionArguments))
		for _, col := range a.ActionArguments {
			col = resolve(col)
			if removed[col] {
				continue
			}
			args = append(args, col)
		}
		a.ActionArguments = args

		switch a.ActionType {
		case transformer.ActionRemove, transformer.ActionCleanColumnName, transformer.ActionImpute:
			if len(a.ActionArguments) == 0 {
				continue
			}
		}

		if col, ok := a.ActionOptions["column"].(string); ok {
			col = resolve(col)
			if removed[col] {
				continue
			}
			a.ActionOptions["column"] = col
		}

		if len(a.ActionVariables) > 0 {
			variables := make(map[string]transformer.ActionVariable, len(a.ActionVariables))
			for name, v := range a.ActionVariables {
				name = resolve(name)
				if removed[name] {
					continue
				}
				v.Feature.UUID = name
				variables[name] = v
			}
			a.ActionVariables = variables
		}

		switch a.ActionType {
		case transformer.ActionCleanColumnName:
			for _, col := range a.ActionArguments {
				if cleaned := transformer.CleanName(col); cleaned != col {
					renamed[col] = cleaned
				}
			}
		case transformer.ActionRemove:
			for _, col := range a.ActionArguments {
				removed[col] = true
			}
		}

		out = append(out, a)
	}
	return out
}
