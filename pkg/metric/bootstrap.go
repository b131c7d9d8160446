package metric

import (
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// BootstrapInterval is a confidence interval estimated by resampling.
type BootstrapInterval struct {
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	StdDev float64 `json:"std_dev"`
	Mean   float64 `json:"mean"`
}

// Bootstrap resamples values with replacement sampleSize times, applies measure
// to every resample and returns the central confidence interval of the results
// (0.95 keeps the 2.5%..97.5% quantiles).
func Bootstrap(values []float64, measure func([]float64) float64, sampleSize int,
	confidence float64) BootstrapInterval {

	if len(values) == 0 || sampleSize <= 0 {
		return BootstrapInterval{}
	}

	data := make([]float64, 0, sampleSize)
	resample := make([]float64, len(values))
	for i := 0; i < sampleSize; i++ {
		for j := range resample {
			resample[j] = lo.Sample(values)
		}
		data = append(data, measure(resample))
	}
	sort.Float64s(data)

	tail := 1 - confidence
	mean, stdDev := stat.MeanStdDev(data, nil)
	return BootstrapInterval{
		Lower:  stat.Quantile(tail/2, stat.LinInterp, data, nil),
		Upper:  stat.Quantile(1-tail/2, stat.LinInterp, data, nil),
		StdDev: stdDev,
		Mean:   mean,
	}
}

// Mean is a measure for Bootstrap.
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}
