package transformer

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// FilterOptions configures a filter action: rows whose cell in Column falls
// outside [Min, Max] are dropped. Either bound may be omitted. Missing
// cells are kept; removing outliers must not also remove incomplete rows.
type FilterOptions struct {
	Column string   `mapstructure:"column"`
	Min    *float64 `mapstructure:"min"`
	Max    *float64 `mapstructure:"max"`
}

// ImputeStrategy names how impute fills missing cells.
type ImputeStrategy string

const (
	ImputeAverage  ImputeStrategy = "average"
	ImputeMedian   ImputeStrategy = "median"
	ImputeMode     ImputeStrategy = "mode"
	ImputeConstant ImputeStrategy = "constant"
)

// ImputeOptions configures an impute action. Value is the fill value
// computed (or chosen) when the suggestion was built.
type ImputeOptions struct {
	Strategy ImputeStrategy `mapstructure:"strategy"`
	Value    any            `mapstructure:"value"`
}

// DropDuplicateOptions configures a drop_duplicate action.
type DropDuplicateOptions struct {
	Keep string `mapstructure:"keep"` // "first" (default) or "last"
}

// decodeOptions decodes an action_options map into a typed options struct.
func decodeOptions(options map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build options decoder: %w", err)
	}
	if err := decoder.Decode(options); err != nil {
		return fmt.Errorf("decode action options: %w", err)
	}
	return nil
}
