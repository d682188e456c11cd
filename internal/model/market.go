package model

import "time"

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// PricePoint is one dated observation of the selected price field.
// Price is NaN when the source cell was empty.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// PriceSeries holds a date-sorted price series for analysis.
type PriceSeries struct {
	Field  string
	Points []PricePoint
}

// Len returns the number of points.
func (s *PriceSeries) Len() int { return len(s.Points) }

// Prices returns the price column as a new slice.
func (s *PriceSeries) Prices() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Price
	}
	return out
}

// Dates returns the date column as a new slice.
func (s *PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}
