package cleaner

import "fmt"

// Contract error kinds. A ContractError means the caller violated the
// evaluation contract, not that a rule found nothing.
const (
	KindColumnType = "column_type"
	KindStatistic  = "statistic"
)

// ContractError reports missing or inconsistent rule input: a dataset
// column absent from the column-type map, or a statistic key a rule
// requires but was not supplied.
type ContractError struct {
	Kind       string
	Identifier string
}

func (e *ContractError) Error() string {
	switch e.Kind {
	case KindColumnType:
		return fmt.Sprintf("no column type supplied for column %q", e.Identifier)
	case KindStatistic:
		return fmt.Sprintf("required statistic %q was not supplied", e.Identifier)
	default:
		return fmt.Sprintf("contract violation (%s): %q", e.Kind, e.Identifier)
	}
}
