package utils

//nolint:depguard
import (
	"math"

	"github.com/go-gota/gota/series"
)

// RollingMean returns, for every position of values, the mean of the window
// ending there. Positions before the first full window are NaN.
func RollingMean(values []float64, window int) []float64 {
	return series.New(values, series.Float, "values").Rolling(window).Mean().Float()
}

// RollingStdDev is RollingMean with the sample standard deviation. A window of
// one value has no sample deviation and yields NaN.
func RollingStdDev(values []float64, window int) []float64 {
	return series.New(values, series.Float, "values").Rolling(window).StdDev().Float()
}

// PctChange returns the change of each value relative to the previous one. The
// result has one element less than values.
func PctChange(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{}
	}
	changes := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			changes[i-1] = math.NaN()
			continue
		}
		changes[i-1] = (values[i] - prev) / prev
	}
	return changes
}

// DropNaN returns values without its NaN elements.
func DropNaN(values []float64) []float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept
}
