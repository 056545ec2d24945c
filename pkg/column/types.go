// Package column defines the classification tags assigned to dataset
// columns. The tags drive which cleaning rules and transformer actions
// apply to a column.
package column

// Type is a per-column classification tag.
type Type string

const (
	Number                  Type = "number"
	NumberWithDecimals      Type = "number_with_decimals"
	Category                Type = "category"
	CategoryHighCardinality Type = "category_high_cardinality"
	Datetime                Type = "datetime"
	Email                   Type = "email"
	PhoneNumber             Type = "phone_number"
	Text                    Type = "text"
	TrueOrFalse             Type = "true_or_false"
	ZipCode                 Type = "zip_code"
)

// NumberTypes is the set of types treated as numeric by statistic-driven
// rules.
var NumberTypes = map[Type]bool{
	Number:             true,
	NumberWithDecimals: true,
}

// IsNumber reports whether the type is numeric.
func (t Type) IsNumber() bool {
	return NumberTypes[t]
}
