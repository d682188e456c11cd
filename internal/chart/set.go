package chart

import (
	"context"
	"path/filepath"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"PriceLens/internal/model"
)

// File names of the standard chart set.
const (
	CumulativeFile = "cumulative_return.png"
	PriceSMAFile   = "price_sma.png"
	VolatilityFile = "rolling_volatility.png"
)

// Requests builds the standard chart set for a priced series.
func Requests(s *model.PriceSeries, d *model.DerivedSeries) map[string]Request {
	dates := s.Dates()
	return map[string]Request{
		CumulativeFile: {
			Title:  "Cumulative Return",
			XLabel: "Date",
			YLabel: "Cumulative Return (x)",
			Dates:  dates,
			Series: []Named{{Name: "Cumulative Return", Values: d.CumulativeReturns}},
			Width:  10 * vg.Inch,
			Height: 5 * vg.Inch,
		},
		PriceSMAFile: {
			Title:  "Price with 50/200 SMA",
			XLabel: "Date",
			YLabel: "Price",
			Dates:  dates,
			Series: []Named{
				{Name: "Price", Values: s.Prices()},
				{Name: "SMA 50", Values: d.SMAShort},
				{Name: "SMA 200", Values: d.SMALong},
			},
			Width:  10 * vg.Inch,
			Height: 5 * vg.Inch,
		},
		VolatilityFile: {
			Title:  "30-day Rolling Annualized Volatility",
			XLabel: "Date",
			YLabel: "Volatility (annualized)",
			Dates:  dates,
			Series: []Named{{Name: "Volatility", Values: d.RollingVol}},
			Width:  10 * vg.Inch,
			Height: 4 * vg.Inch,
		},
	}
}

// Order is the order charts appear in reports.
var Order = []string{CumulativeFile, PriceSMAFile, VolatilityFile}

// RenderAll draws the standard chart set into dir concurrently and returns
// the written paths in Order.
func RenderAll(ctx context.Context, dir string, s *model.PriceSeries, d *model.DerivedSeries) ([]string, error) {
	reqs := Requests(s, d)
	paths := make([]string, len(Order))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range Order {
		path := filepath.Join(dir, name)
		paths[i] = path
		req := reqs[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return Render(path, req)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info().Str("dir", dir).Int("charts", len(paths)).Msg("saved charts")
	return paths, nil
}
