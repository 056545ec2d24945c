package transformer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/thunderstroke325/mage-ai/pkg/frame"
)

// applyAction executes one action against a frame and returns the
// transformed frame. The input frame is never mutated.
func applyAction(f *frame.Frame, a Action) (*frame.Frame, error) {
	for _, col := range a.ActionArguments {
		if !f.HasColumn(col) {
			return nil, &ResolutionError{ActionType: a.ActionType, Column: col}
		}
	}

	switch a.ActionType {
	case ActionRemove:
		return f.DropColumns(a.ActionArguments...)
	case ActionCleanColumnName:
		return applyCleanColumnName(f, a)
	case ActionDropDuplicate:
		return applyDropDuplicate(f, a)
	case ActionFilter:
		return applyFilter(f, a)
	case ActionImpute:
		return applyImpute(f, a)
	default:
		return nil, fmt.Errorf("unknown action type %q", a.ActionType)
	}
}

func applyCleanColumnName(f *frame.Frame, a Action) (*frame.Frame, error) {
	out := f
	for _, col := range a.ActionArguments {
		cleaned := CleanName(col)
		if cleaned == col {
			continue
		}
		renamed, err := out.RenameColumn(col, cleaned)
		if err != nil {
			return nil, fmt.Errorf("clean column name %q: %w", col, err)
		}
		out = renamed
	}
	return out.Copy(), nil
}

func applyDropDuplicate(f *frame.Frame, a Action) (*frame.Frame, error) {
	var opts DropDuplicateOptions
	if err := decodeOptions(a.ActionOptions, &opts); err != nil {
		return nil, err
	}

	keys := make([]string, 0, f.NumRows())
	for _, row := range f.Rows() {
		encoded, err := json.Marshal(row)
		if err != nil {
			return nil, fmt.Errorf("encode row for dedup: %w", err)
		}
		keys = append(keys, string(encoded))
	}

	keep := make([]bool, len(keys))
	seen := make(map[string]int, len(keys))
	if opts.Keep == "last" {
		for i, key := range keys {
			if prev, ok := seen[key]; ok {
				keep[prev] = false
			}
			seen[key] = i
			keep[i] = true
		}
	} else {
		for i, key := range keys {
			if _, ok := seen[key]; !ok {
				seen[key] = i
				keep[i] = true
			}
		}
	}

	i := -1
	return f.Filter(func([]any) bool {
		i++
		return keep[i]
	}), nil
}

func applyFilter(f *frame.Frame, a Action) (*frame.Frame, error) {
	var opts FilterOptions
	if err := decodeOptions(a.ActionOptions, &opts); err != nil {
		return nil, err
	}
	if opts.Column == "" {
		return nil, fmt.Errorf("filter action requires a column option")
	}
	if !f.HasColumn(opts.Column) {
		return nil, &ResolutionError{ActionType: a.ActionType, Column: opts.Column}
	}

	values, err := f.Values(opts.Column)
	if err != nil {
		return nil, err
	}
	i := -1
	return f.Filter(func([]any) bool {
		i++
		v, ok := CellFloat(values[i])
		if !ok {
			// Missing or non-numeric cells pass through untouched.
			return true
		}
		if opts.Min != nil && v < *opts.Min {
			return false
		}
		if opts.Max != nil && v > *opts.Max {
			return false
		}
		return true
	}), nil
}

func applyImpute(f *frame.Frame, a Action) (*frame.Frame, error) {
	var opts ImputeOptions
	if err := decodeOptions(a.ActionOptions, &opts); err != nil {
		return nil, err
	}
	if opts.Value == nil {
		return nil, fmt.Errorf("impute action requires a value option")
	}

	out := f
	for _, col := range a.ActionArguments {
		values, err := out.Values(col)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			if v == nil {
				values[i] = opts.Value
			}
		}
		filled, err := out.WithColumnValues(col, values)
		if err != nil {
			return nil, err
		}
		out = filled
	}
	return out.Copy(), nil
}

// CellFloat converts a numeric-ish cell to float64. Missing cells and
// unparsable strings report false.
func CellFloat(cell any) (float64, bool) {
	switch v := cell.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

var nonNameChars = regexp.MustCompile(`[^a-z0-9_]+`)

// CleanName converts a column name to lower_snake_case. Both the
// clean_column_names rule and the clean_column_name executor derive the
// target name with this function, so replay stays deterministic without
// storing the mapping in the payload.
func CleanName(name string) string {
	s := strings.TrimSpace(name)
	// Break camelCase boundaries before lowering.
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rune(s[i-1])
			if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	s = strings.ToLower(b.String())
	s = nonNameChars.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}
