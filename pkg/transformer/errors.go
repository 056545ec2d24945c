package transformer

import "fmt"

// ResolutionError reports an action that references a column no longer
// present in the frame being transformed. The fold aborts without partial
// mutation when one is returned.
type ResolutionError struct {
	ActionType ActionType
	Column     string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("action %q references unresolved column %q", e.ActionType, e.Column)
}
