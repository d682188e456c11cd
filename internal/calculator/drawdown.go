package calculator

import "math"

// RunningMax returns the cumulative maximum of xs. NaN entries do not
// update the running peak and map to NaN.
func RunningMax(xs []float64) []float64 {
	out := make([]float64, len(xs))
	peak := math.NaN()
	for i, x := range xs {
		if math.IsNaN(x) {
			out[i] = math.NaN()
			continue
		}
		if math.IsNaN(peak) || x > peak {
			peak = x
		}
		out[i] = peak
	}
	return out
}

// Drawdowns returns (c - peak) / peak for each point of a cumulative
// return series. Every defined value is <= 0.
func Drawdowns(cumulative []float64) []float64 {
	peaks := RunningMax(cumulative)
	out := make([]float64, len(cumulative))
	for i, c := range cumulative {
		out[i] = (c - peaks[i]) / peaks[i]
	}
	return out
}

// MaxDrawdown returns the most negative drawdown of a cumulative return
// series, or 0 when it never falls below its running peak. NaN when no
// drawdown is defined.
func MaxDrawdown(cumulative []float64) float64 {
	dd := defined(Drawdowns(cumulative))
	if len(dd) == 0 {
		return math.NaN()
	}
	worst := dd[0]
	for _, d := range dd[1:] {
		if d < worst {
			worst = d
		}
	}
	return worst
}
