// Package analysis computes the column types and statistics the cleaner
// consumes, and bundles the analyze/clean flows used by the CLI and the
// server. The cleaner core treats both inputs as opaque; only this package
// knows how they are derived.
package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/thunderstroke325/mage-ai/pkg/column"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
)

// highCardinalityRatio separates category from category_high_cardinality:
// distinct values over non-missing values.
const highCardinalityRatio = 0.6

// categoryMaxDistinct caps how many distinct values a column may have and
// still be classified categorical rather than text.
const categoryMaxDistinct = 255

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-.]{6,18}[0-9]$`)
	zipPattern   = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
)

var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// InferTypes classifies every column of the frame. Cells are expected to be
// strings (as read from CSV), numbers, bools, or nil.
func InferTypes(f *frame.Frame) map[string]column.Type {
	types := make(map[string]column.Type, f.NumColumns())
	for _, col := range f.Columns() {
		values, _ := f.Values(col)
		types[col] = inferColumn(values)
	}
	return types
}

func inferColumn(values []any) column.Type {
	var present []string
	distinct := make(map[string]struct{})

	allBool := true
	allInt := true
	allFloat := true
	allEmail := true
	allPhone := true
	allZip := true
	allDatetime := true

	for _, v := range values {
		if isMissing(v) {
			continue
		}
		s := cellString(v)
		present = append(present, s)
		distinct[s] = struct{}{}

		lower := strings.ToLower(strings.TrimSpace(s))
		if lower != "true" && lower != "false" {
			allBool = false
		}
		if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			allFloat = false
		}
		if !emailPattern.MatchString(s) {
			allEmail = false
		}
		if !phonePattern.MatchString(s) {
			allPhone = false
		}
		if !zipPattern.MatchString(s) {
			allZip = false
		}
		if !parseableDatetime(s) {
			allDatetime = false
		}
	}

	if len(present) == 0 {
		return column.Text
	}
	switch {
	case allBool:
		return column.TrueOrFalse
	case allZip:
		return column.ZipCode
	case allInt:
		return column.Number
	case allFloat:
		return column.NumberWithDecimals
	case allDatetime:
		return column.Datetime
	case allEmail:
		return column.Email
	case allPhone:
		return column.PhoneNumber
	}

	if len(distinct) <= categoryMaxDistinct {
		ratio := float64(len(distinct)) / float64(len(present))
		if ratio <= highCardinalityRatio {
			return column.Category
		}
		return column.CategoryHighCardinality
	}
	return column.Text
}

func parseableDatetime(s string) bool {
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// isMissing reports whether a cell counts as a missing value. The string
// spellings match what CSV exports of null cells commonly contain.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		switch strings.TrimSpace(s) {
		case "", "NA", "NaN", "null", "None":
			return true
		}
	}
	return false
}

func cellString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	default:
		return strconv.FormatFloat(toFloat(v), 'f', -1, 64)
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	default:
		return 0
	}
}
