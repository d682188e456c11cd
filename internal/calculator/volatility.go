package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// sampleStdDev is the N-1 standard deviation; NaN for fewer than two values.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}

// RollingVolatility computes the sample standard deviation of returns over
// the trailing window ending at each index, scaled by sqrt(periodsPerYear).
//
// Windows are positional: a window that still covers an undefined return
// (such as the leading NaN) is itself undefined. With window 30 the first
// defined value therefore sits at index 30.
func RollingVolatility(returns []float64, window, periodsPerYear int) []float64 {
	out := nanSlice(len(returns))
	if window < 2 {
		return out
	}
	scale := math.Sqrt(float64(periodsPerYear))
	for i := window - 1; i < len(returns); i++ {
		w := returns[i-window+1 : i+1]
		if hasNaN(w) {
			continue
		}
		out[i] = sampleStdDev(w) * scale
	}
	return out
}

// AnnualizedVolatility is the sample standard deviation of all defined
// returns scaled by sqrt(periodsPerYear). NaN with fewer than two returns.
func AnnualizedVolatility(returns []float64, periodsPerYear int) float64 {
	return sampleStdDev(defined(returns)) * math.Sqrt(float64(periodsPerYear))
}
