package main

import (
	"fmt"
	"os"

	"github.com/phuslu/log"

	"PriceLens/internal/config"
	"PriceLens/internal/logging"
	"PriceLens/internal/notifier"
	"PriceLens/internal/pipeline"
	"PriceLens/internal/recorder"
)

// loadConfig reads and validates the config, then installs the logger.
func loadConfig() (*config.Config, error) {
	p := config.ResolvePath(*configPath)
	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log.Debug().Str("config", p).Msg("configuration loaded")
	return cfg, nil
}

// telegram returns the configured notifier, or nil without a bot token.
func telegram(cfg *config.Config) *notifier.TelegramNotifier {
	if cfg.Telegram.BotToken == "" {
		return nil
	}
	return notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
}

// newRunner builds the pipeline with the configured recorder and notifier.
// The caller closes the returned recorder.
func newRunner(cfg *config.Config) (*pipeline.Runner, recorder.Recorder) {
	rec := recorder.Open(cfg.Database.SQLitePath)
	var n pipeline.Notifier
	if tn := telegram(cfg); tn != nil {
		n = tn
	}
	return pipeline.NewRunner(cfg, rec, n), rec
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
}
