package calculator

import (
	"gonum.org/v1/gonum/stat"
)

// SMA computes the trailing simple moving average of prices over window
// points. Entries before the window fills, and windows that contain a NaN
// price, are NaN. A non-positive window yields an all-NaN series.
func SMA(prices []float64, window int) []float64 {
	out := nanSlice(len(prices))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(prices); i++ {
		w := prices[i-window+1 : i+1]
		if hasNaN(w) {
			continue
		}
		out[i] = stat.Mean(w, nil)
	}
	return out
}
