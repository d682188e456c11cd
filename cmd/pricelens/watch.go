package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/phuslu/log"

	"PriceLens/internal/collector"
	"PriceLens/internal/scheduler"
)

type watchCmd struct {
	now bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "re-run the pipeline on the configured cron schedule" }
func (*watchCmd) Usage() string {
	return `pricelens watch [-now]

  Runs fetch (when data_source.symbol is set) and the full pipeline on
  schedule.cron. With a Telegram bot configured it also answers /kpi,
  /run and /history. Stops on SIGINT or SIGTERM.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.now, "now", os.Getenv("RUN_ON_START") == "true", "Run once immediately after starting.")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	log.Info().Msg("PriceLens starting")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, rec := newRunner(cfg)
	defer rec.Close()

	var col *collector.Collector
	if cfg.DataSource.Symbol != "" {
		fetcher := collector.NewYahooFetcher(cfg.Proxy)
		col = collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.DataSource.Range)
		log.Info().Str("source", fetcher.Name()).Str("symbol", cfg.DataSource.Symbol).Msg("data source")
	}

	tn := telegram(cfg)
	sched := scheduler.NewScheduler(ctx, runner, col, tn, rec)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}
	if c.now {
		log.Info().Msg("running pipeline now")
		go func() {
			if err := sched.RunNow(); err != nil {
				log.Error().Err(err).Msg("initial run")
			}
		}()
	}

	log.Info().Str("cron", cfg.Schedule.Cron).Msg("PriceLens is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Info().Msg("shutdown signal received, stopping")
	return subcommands.ExitSuccess
}
