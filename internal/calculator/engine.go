package calculator

import (
	"errors"

	"PriceLens/internal/model"
)

// ErrEmptySeries is returned by Analyze when the series has no points.
var ErrEmptySeries = errors.New("price series is empty")

// Options configures the window lengths and annualization used by Engine.
type Options struct {
	VolWindow   int     // trailing window for rolling volatility
	ShortSMA    int     // short moving-average window
	LongSMA     int     // long moving-average window
	TradingDays int     // periods per year for annualization
	RiskFree    float64 // annual risk-free rate for Sharpe
}

// DefaultOptions returns the standard 30-day volatility, 50/200 SMA,
// 252 trading days and a zero risk-free rate.
func DefaultOptions() Options {
	return Options{
		VolWindow:   30,
		ShortSMA:    50,
		LongSMA:     200,
		TradingDays: 252,
		RiskFree:    0,
	}
}

// Engine derives analytics columns and KPIs from a price series.
// It holds no state besides its options and never mutates its input.
type Engine struct {
	Opts Options
}

// NewEngine creates an Engine, filling zero option fields with defaults.
func NewEngine(opts Options) *Engine {
	def := DefaultOptions()
	if opts.VolWindow == 0 {
		opts.VolWindow = def.VolWindow
	}
	if opts.ShortSMA == 0 {
		opts.ShortSMA = def.ShortSMA
	}
	if opts.LongSMA == 0 {
		opts.LongSMA = def.LongSMA
	}
	if opts.TradingDays == 0 {
		opts.TradingDays = def.TradingDays
	}
	return &Engine{Opts: opts}
}

// Derive computes the per-date analytics columns.
func (e *Engine) Derive(prices []float64) *model.DerivedSeries {
	rets := Returns(prices)
	return &model.DerivedSeries{
		Returns:           rets,
		CumulativeReturns: CumulativeReturns(rets),
		RollingVol:        RollingVolatility(rets, e.Opts.VolWindow, e.Opts.TradingDays),
		SMAShort:          SMA(prices, e.Opts.ShortSMA),
		SMALong:           SMA(prices, e.Opts.LongSMA),
	}
}

// Summarize computes the KPI summary from the series and its derived columns.
func (e *Engine) Summarize(series *model.PriceSeries, derived *model.DerivedSeries) *model.KPISummary {
	start := series.Points[0].Date
	end := series.Points[len(series.Points)-1].Date
	annVol := AnnualizedVolatility(derived.Returns, e.Opts.TradingDays)
	return &model.KPISummary{
		StartDate:   start,
		EndDate:     end,
		CAGR:        CAGR(series.Prices(), start, end),
		AnnualVol:   annVol,
		Sharpe:      Sharpe(derived.Returns, annVol, e.Opts.RiskFree, e.Opts.TradingDays),
		MaxDrawdown: MaxDrawdown(derived.CumulativeReturns),
	}
}

// Analyze runs Derive and Summarize over series.
func (e *Engine) Analyze(series *model.PriceSeries) (*model.DerivedSeries, *model.KPISummary, error) {
	if series == nil || series.Len() == 0 {
		return nil, nil, ErrEmptySeries
	}
	derived := e.Derive(series.Prices())
	return derived, e.Summarize(series, derived), nil
}
