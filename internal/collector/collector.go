package collector

import (
	"context"
	"fmt"

	"github.com/phuslu/log"
)

// Collector fetches daily bars for one symbol and stores them as the raw
// spreadsheet the ingest stage reads.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Range   string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol, rng string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Range: rng}
}

// Collect fetches bars and writes them to path, returning the bar count.
func (c *Collector) Collect(ctx context.Context, path string) (int, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, c.Symbol, c.Range)
	if err != nil {
		return 0, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("fetch daily bars: %s returned no bars for %s", c.Fetcher.Name(), c.Symbol)
	}
	if err := WriteXLSX(path, bars); err != nil {
		return 0, err
	}
	log.Info().
		Str("source", c.Fetcher.Name()).
		Str("symbol", c.Symbol).
		Str("range", c.Range).
		Int("bars", len(bars)).
		Str("path", path).
		Msg("saved raw prices")
	return len(bars), nil
}
