// Package metric computes descriptive statistics over price columns.
package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one numeric column.
type Summary struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summarize returns count, mean, sample standard deviation, min and max of values.
// NaNs are ignored; an empty column has zero count and NaN statistics.
func Summarize(name string, values []float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}

	summary := Summary{Name: name, Count: len(clean)}
	if len(clean) == 0 {
		nan := math.NaN()
		summary.Mean, summary.Std, summary.Min, summary.Max = nan, nan, nan, nan
		return summary
	}

	summary.Mean, summary.Std = stat.MeanStdDev(clean, nil)
	if len(clean) == 1 {
		summary.Std = math.NaN()
	}
	summary.Min = floats.Min(clean)
	summary.Max = floats.Max(clean)
	return summary
}
