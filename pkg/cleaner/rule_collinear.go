package cleaner

import (
	"math"

	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// CollinearityThreshold is the absolute Pearson correlation above which two
// numeric columns count as collinear.
const CollinearityThreshold = 0.95

// minCollinearRows guards against declaring collinearity from a sample too
// small to mean anything.
const minCollinearRows = 3

// RemoveCollinearColumns projects the snapshot to its null-free numeric
// view and suggests dropping every column that is strongly correlated with
// an earlier column that is being kept. Scanning in snapshot column order
// keeps the output deterministic.
type RemoveCollinearColumns struct {
	ctx *RuleContext
}

func (r *RemoveCollinearColumns) Name() string {
	return "remove_collinear_columns"
}

func (r *RemoveCollinearColumns) Evaluate() ([]Suggestion, error) {
	numeric, columns, err := r.ctx.FilterNumericTypes()
	if err != nil {
		return nil, err
	}
	if len(columns) < 2 || numeric.NumRows() < minCollinearRows {
		return []Suggestion{}, nil
	}

	series := make([][]float64, len(columns))
	for i, col := range columns {
		values, err := numeric.Values(col)
		if err != nil {
			return nil, err
		}
		series[i] = make([]float64, len(values))
		for j, v := range values {
			series[i][j] = v.(float64)
		}
	}

	var kept []int
	var removed []string
	for i := range columns {
		collinear := false
		for _, k := range kept {
			if math.Abs(pearson(series[k], series[i])) >= CollinearityThreshold {
				collinear = true
				break
			}
		}
		if collinear {
			removed = append(removed, columns[i])
		} else {
			kept = append(kept, i)
		}
	}
	if len(removed) == 0 {
		return []Suggestion{}, nil
	}
	return []Suggestion{
		NewSuggestion(
			"Remove collinear columns",
			"These columns are strongly correlated with other columns and are likely redundant.",
			transformer.ActionRemove,
			WithActionArguments(removed),
			WithActionVariables(r.ctx.BuildActionVariables(removed)),
		),
	}, nil
}

// pearson computes the Pearson correlation of two equally sized series.
// A series with zero variance correlates with nothing.
func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}
	var sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
		sumXY += x[i] * y[i]
	}
	varX := sumXX/n - (sumX/n)*(sumX/n)
	varY := sumYY/n - (sumY/n)*(sumY/n)
	if varX <= 0 || varY <= 0 {
		return 0
	}
	cov := sumXY/n - (sumX/n)*(sumY/n)
	return cov / math.Sqrt(varX*varY)
}
