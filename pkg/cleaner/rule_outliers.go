package cleaner

import (
	"fmt"
	"math"

	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// OutlierStdDevs is the z-score distance beyond which a cell counts as an
// outlier.
const OutlierStdDevs = 3.0

// minOutlierRows is the smallest null-free numeric sample for which an
// outlier bound is worth suggesting.
const minOutlierRows = 10

// RemoveOutliers projects the snapshot to its null-free numeric view and,
// for each numeric column containing cells beyond mean ± 3·std, suggests a
// row-axis filter bounded to that range. One suggestion per column, in
// snapshot column order, so the caller can accept them selectively.
type RemoveOutliers struct {
	ctx *RuleContext
}

func (r *RemoveOutliers) Name() string {
	return "remove_outliers"
}

func (r *RemoveOutliers) Evaluate() ([]Suggestion, error) {
	numeric, columns, err := r.ctx.FilterNumericTypes()
	if err != nil {
		return nil, err
	}
	if numeric.NumRows() < minOutlierRows {
		return []Suggestion{}, nil
	}

	suggestions := []Suggestion{}
	for _, col := range columns {
		values, err := numeric.Values(col)
		if err != nil {
			return nil, err
		}
		series := make([]float64, len(values))
		for i, v := range values {
			series[i] = v.(float64)
		}
		mean, std := meanStd(series)
		if std == 0 {
			continue
		}
		lower := mean - OutlierStdDevs*std
		upper := mean + OutlierStdDevs*std
		outliers := 0
		for _, v := range series {
			if v < lower || v > upper {
				outliers++
			}
		}
		if outliers == 0 {
			continue
		}
		suggestions = append(suggestions, NewSuggestion(
			fmt.Sprintf("Remove outliers in %s", col),
			fmt.Sprintf("Remove %d row(s) where %s is more than %.0f standard deviations from the mean.", outliers, col, OutlierStdDevs),
			transformer.ActionFilter,
			WithActionArguments([]string{col}),
			WithActionOptions(map[string]any{
				"column": col,
				"min":    lower,
				"max":    upper,
			}),
			WithActionVariables(r.ctx.BuildActionVariables([]string{col})),
			WithAxis(transformer.AxisRow),
		))
	}
	return suggestions, nil
}

// meanStd computes the mean and population standard deviation in a single
// pass.
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
