package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/thunderstroke325/mage-ai/pkg/column"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// Statistics computes the per-column and global summary values the cleaning
// rules consume. Keys follow the "<column>/<name>" convention; global keys
// are bare. Every column gets null_value_rate, count, count_distinct and
// mode; numeric columns additionally get average, median and std_dev.
func Statistics(f *frame.Frame, types map[string]column.Type) map[string]any {
	stats := make(map[string]any)
	rowCount := f.NumRows()
	stats["count"] = float64(rowCount)
	stats["duplicate_row_count"] = float64(duplicateRowCount(f))

	for _, col := range f.Columns() {
		values, _ := f.Values(col)

		missing := 0
		counts := make(map[string]int)
		var order []string
		var numbers []float64
		for _, v := range values {
			if isMissing(v) {
				missing++
				continue
			}
			s := cellString(v)
			if _, seen := counts[s]; !seen {
				order = append(order, s)
			}
			counts[s]++
			if n, ok := transformer.CellFloat(v); ok {
				numbers = append(numbers, n)
			}
		}
		present := len(values) - missing

		rate := 0.0
		if rowCount > 0 {
			rate = float64(missing) / float64(rowCount)
		}
		stats[col+"/null_value_rate"] = rate
		stats[col+"/count"] = float64(present)
		stats[col+"/count_distinct"] = float64(len(counts))
		stats[col+"/mode"] = modeValue(order, counts)

		if types[col].IsNumber() && len(numbers) > 0 {
			avg, std := meanStd(numbers)
			stats[col+"/average"] = avg
			stats[col+"/std_dev"] = std
			stats[col+"/median"] = median(numbers)
		}
	}
	return stats
}

// duplicateRowCount counts rows that repeat an earlier row exactly.
func duplicateRowCount(f *frame.Frame) int {
	seen := make(map[string]struct{}, f.NumRows())
	duplicates := 0
	for _, row := range f.Rows() {
		encoded, err := json.Marshal(row)
		if err != nil {
			continue
		}
		key := string(encoded)
		if _, ok := seen[key]; ok {
			duplicates++
		} else {
			seen[key] = struct{}{}
		}
	}
	return duplicates
}

// modeValue returns the most frequent value, breaking ties by first
// appearance so repeated runs stay deterministic.
func modeValue(order []string, counts map[string]int) any {
	if len(order) == 0 {
		return nil
	}
	best := order[0]
	for _, s := range order[1:] {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best
}

func meanStd(x []float64) (mean, std float64) {
	n := float64(len(x))
	if n == 0 {
		return 0, 0
	}
	var sum, sumSq float64
	for _, v := range x {
		sum += v
		sumSq += v * v
	}
	mean = sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
