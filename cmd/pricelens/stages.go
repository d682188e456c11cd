package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"PriceLens/internal/pipeline"
	"PriceLens/internal/report"
)

type ingestCmd struct{}

func (*ingestCmd) Name() string     { return "ingest" }
func (*ingestCmd) Synopsis() string { return "normalize the raw spreadsheet into processed_prices.csv" }
func (*ingestCmd) Usage() string {
	return `pricelens ingest

  Reads paths.raw_file (xlsx or csv), standardizes column names, parses
  and sorts dates and writes processed_prices.csv under paths.out_dir.
`
}
func (*ingestCmd) SetFlags(*flag.FlagSet) {}

func (*ingestCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	runner, rec := newRunner(cfg)
	defer rec.Close()

	frame, err := runner.Ingest(ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Processed %d rows into %s\n", frame.Len(), cfg.ProcessedPath())
	return subcommands.ExitSuccess
}

type analyzeCmd struct {
	field string
	pdf   bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "compute KPIs, time series, charts and the dashboard" }
func (*analyzeCmd) Usage() string {
	return `pricelens analyze [-field <column>] [-pdf]

  Reads processed_prices.csv, analyzes Adj Close (or Close, or -field) and
  writes kpis_summary.csv, timeseries_summary.csv and three PNG charts.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.field, "field", "", "Price column to analyze (default analytics.price_field, then Adj Close, then Close).")
	f.BoolVar(&c.pdf, "pdf", false, "Also write dashboard.pdf.")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runStages(ctx, c.field, c.pdf, (*pipeline.Runner).Analyze)
}

type runCmd struct {
	field string
	pdf   bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "ingest then analyze" }
func (*runCmd) Usage() string {
	return `pricelens run [-field <column>] [-pdf]

  Runs the ingest and analyze stages back to back.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.field, "field", "", "Price column to analyze.")
	f.BoolVar(&c.pdf, "pdf", false, "Also write dashboard.pdf.")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return runStages(ctx, c.field, c.pdf, (*pipeline.Runner).Run)
}

func runStages(ctx context.Context, field string, pdf bool, stage func(*pipeline.Runner, context.Context) (*pipeline.Result, error)) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if field != "" {
		cfg.Analytics.PriceField = field
	}
	cfg.Report.PDF = cfg.Report.PDF || pdf

	runner, rec := newRunner(cfg)
	defer rec.Close()

	res, err := stage(runner, ctx)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	k := res.KPI
	fmt.Printf("%s %s → %s (%d rows)\n", res.Series.Field,
		k.StartDate.Format(report.DateLayout), k.EndDate.Format(report.DateLayout), res.Series.Len())
	header := report.KPIHeader
	row := report.KPIRecord(k)
	for i := 2; i < len(header); i++ {
		v := row[i]
		if v == "" {
			v = "n/a"
		}
		fmt.Printf("  %-22s %s\n", header[i], v)
	}
	fmt.Printf("Outputs written to %s\n", cfg.Paths.OutDir)
	return subcommands.ExitSuccess
}
