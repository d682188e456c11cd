package model

import "time"

// DerivedSeries holds the per-date analytics columns. Every slice has the
// same length as the input series; undefined entries are NaN.
type DerivedSeries struct {
	Returns           []float64
	CumulativeReturns []float64
	RollingVol        []float64
	SMAShort          []float64
	SMALong           []float64
}

// Len returns the number of rows.
func (d *DerivedSeries) Len() int { return len(d.Returns) }

// KPISummary holds the scalar performance statistics of a whole series.
type KPISummary struct {
	StartDate   time.Time
	EndDate     time.Time
	CAGR        float64
	AnnualVol   float64
	Sharpe      *float64 // nil when volatility is undefined or zero
	MaxDrawdown float64
}
