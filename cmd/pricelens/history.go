package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"PriceLens/internal/recorder"
	"PriceLens/internal/report"
)

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded runs, newest first" }
func (*historyCmd) Usage() string {
	return `pricelens history [-n <count>]

  Prints the KPI summaries stored in database.sqlite_path.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Number of runs to show (0 for all).")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if cfg.Database.SQLitePath == "" {
		fail(fmt.Errorf("database.sqlite_path is not configured"))
		return subcommands.ExitUsageError
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer rec.Close()

	runs, err := rec.List(c.limit)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tTIME\tFIELD\tROWS\tSTART\tEND\tCAGR\tVOL\tSHARPE\tMAX DD")
	for _, r := range runs {
		k := r.KPI
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID[:8], r.Timestamp.Format("2006-01-02 15:04"), r.PriceField, r.Rows,
			k.StartDate.Format(report.DateLayout), k.EndDate.Format(report.DateLayout),
			cell(report.FormatFloat(k.CAGR)), cell(report.FormatFloat(k.AnnualVol)),
			cell(report.FormatOptional(k.Sharpe)), cell(report.FormatFloat(k.MaxDrawdown)))
	}
	if err := w.Flush(); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
