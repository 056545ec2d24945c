package transformer

import (
	"fmt"
	"strings"
)

// FillTitles returns a copy of the action list with empty Title and Message
// fields filled from the action type and arguments. It is idempotent:
// actions that already carry a title keep it, and action_type,
// action_arguments and outputs are never altered.
func FillTitles(actions []Action) []Action {
	out := copyActions(actions)
	for i := range out {
		if out[i].Title == "" {
			out[i].Title = actionTitle(out[i])
		}
		if out[i].Message == "" {
			out[i].Message = actionMessage(out[i])
		}
	}
	return out
}

func actionTitle(a Action) string {
	switch a.ActionType {
	case ActionRemove:
		return "Remove columns"
	case ActionCleanColumnName:
		return "Clean dirty column names"
	case ActionDropDuplicate:
		return "Remove duplicate rows"
	case ActionFilter:
		return "Filter rows"
	case ActionImpute:
		return "Fill in missing values"
	default:
		return fmt.Sprintf("Apply %s", a.ActionType)
	}
}

func actionMessage(a Action) string {
	if len(a.ActionArguments) == 0 {
		return ""
	}
	return fmt.Sprintf("Columns: %s", strings.Join(a.ActionArguments, ", "))
}
