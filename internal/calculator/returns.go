package calculator

import "math"

// Returns computes simple period returns: out[i] = prices[i]/prices[i-1] - 1.
// out[0] is NaN. Zero or negative prices are not rejected; the resulting
// Inf or NaN values propagate to whatever consumes them.
func Returns(prices []float64) []float64 {
	out := make([]float64, len(prices))
	if len(prices) == 0 {
		return out
	}
	out[0] = math.NaN()
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i]/prices[i-1] - 1
	}
	return out
}

// CumulativeReturns compounds returns left to right starting from 1.0.
// NaN returns count as 0 here only, so out[0] is always 1.0.
func CumulativeReturns(returns []float64) []float64 {
	out := make([]float64, len(returns))
	acc := 1.0
	for i, r := range returns {
		if math.IsNaN(r) {
			r = 0
		}
		acc *= 1 + r
		out[i] = acc
	}
	return out
}

// defined returns the non-NaN values of xs.
func defined(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
