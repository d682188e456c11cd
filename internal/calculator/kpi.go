package calculator

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DaysPerYear converts a calendar-day span into years for CAGR.
const DaysPerYear = 365.25

// CAGR computes the compound annual growth rate between the first and last
// defined prices, annualized over the calendar span start..end. It returns
// NaN when the span is not positive or no price is defined.
func CAGR(prices []float64, start, end time.Time) float64 {
	days := math.Floor(end.Sub(start).Hours() / 24)
	years := days / DaysPerYear
	if years <= 0 {
		return math.NaN()
	}
	vals := defined(prices)
	if len(vals) == 0 {
		return math.NaN()
	}
	first, last := vals[0], vals[len(vals)-1]
	return math.Pow(last/first, 1/years) - 1
}

// Sharpe computes (mean(returns)*periodsPerYear - riskFree) / annVol over
// the defined returns. It returns nil when annVol is NaN or zero, since
// the ratio is not applicable then.
func Sharpe(returns []float64, annVol, riskFree float64, periodsPerYear int) *float64 {
	if math.IsNaN(annVol) || annVol == 0 {
		return nil
	}
	vals := defined(returns)
	if len(vals) == 0 {
		return nil
	}
	s := (stat.Mean(vals, nil)*float64(periodsPerYear) - riskFree) / annVol
	return &s
}
