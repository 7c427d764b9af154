package math

import (
	"math"
	"sort"
)

// MedianInPlace sorts values and returns their median, averaging the two
// middle elements for even lengths. Returns 0 for an empty slice.
func MedianInPlace(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sort.Float64s(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// Median returns the median of values without modifying them.
func Median(values []float64) float64 {
	tmp := make([]float64, len(values))
	copy(tmp, values)
	return MedianInPlace(tmp)
}

// MedianAbsoluteDeviation returns the median of |v - median(values)| over
// values. A robust scale estimate, insensitive to individual outliers.
func MedianAbsoluteDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	median := Median(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - median)
	}
	return MedianInPlace(deviations)
}
