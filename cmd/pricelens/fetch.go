package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"PriceLens/internal/collector"
)

type fetchCmd struct {
	symbol string
	rng    string
	out    string
	mock   bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download daily prices from Yahoo Finance into the raw spreadsheet" }
func (*fetchCmd) Usage() string {
	return `pricelens fetch [-symbol <ticker>] [-range <range>] [-o <file.xlsx>]

  Downloads daily bars (including adjusted close) and writes them as the
  raw workbook the ingest stage reads. Defaults come from data_source and
  paths.raw_file in the config.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Ticker to download (default data_source.symbol).")
	f.StringVar(&c.rng, "range", "", "Yahoo range such as 1y, 5y or max (default data_source.range).")
	f.StringVar(&c.out, "o", "", "Output workbook (default paths.raw_file).")
	f.BoolVar(&c.mock, "mock", false, "Generate synthetic bars instead of calling Yahoo.")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	symbol := firstNonEmpty(c.symbol, cfg.DataSource.Symbol)
	if symbol == "" {
		fail(fmt.Errorf("no symbol: pass -symbol or set data_source.symbol"))
		return subcommands.ExitUsageError
	}
	out := firstNonEmpty(c.out, cfg.Paths.RawFile)

	var fetcher collector.Fetcher = collector.NewYahooFetcher(cfg.Proxy)
	if c.mock {
		fetcher = &collector.MockFetcher{Price: 100}
	}
	col := collector.NewCollector(fetcher, symbol, firstNonEmpty(c.rng, cfg.DataSource.Range))
	n, err := col.Collect(ctx, out)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d bars for %s to %s\n", n, symbol, out)
	return subcommands.ExitSuccess
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}
