package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data/yahoo_data.xlsx", cfg.Paths.RawFile)
	assert.Equal(t, "outputs", cfg.Paths.OutDir)
	assert.Equal(t, 30, cfg.Analytics.VolWindow)
	assert.Equal(t, 50, cfg.Analytics.ShortSMA)
	assert.Equal(t, 200, cfg.Analytics.LongSMA)
	assert.Equal(t, 252, cfg.Analytics.TradingDays)
	assert.Equal(t, "5y", cfg.DataSource.Range)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLValues(t *testing.T) {
	p := writeFile(t, `
paths:
  raw_file: in/prices.xlsx
  out_dir: out
analytics:
  price_field: Close
  risk_free: 0.02
report:
  pdf: true
database:
  sqlite_path: out/runs.db
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "in/prices.xlsx", cfg.Paths.RawFile)
	assert.Equal(t, "Close", cfg.Analytics.PriceField)
	assert.Equal(t, 0.02, cfg.Analytics.RiskFree)
	assert.True(t, cfg.Report.PDF)
	assert.Equal(t, "out/runs.db", cfg.Database.SQLitePath)
	assert.Equal(t, filepath.Join("out", "kpis_summary.csv"), cfg.KPIPath())
	assert.Equal(t, filepath.Join("out", "processed_prices.csv"), cfg.ProcessedPath())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeFile(t, "paths:\n  out_dir: from-file\n")
	t.Setenv("PRICELENS_PATHS_OUT_DIR", "from-env")
	t.Setenv("PRICELENS_ANALYTICS_RISK_FREE", "0.05")
	t.Setenv("PRICELENS_TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("PRICELENS_TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Paths.OutDir)
	assert.Equal(t, 0.05, cfg.Analytics.RiskFree)
	assert.Equal(t, "tok", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "paths: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"vol window too small", func(c *Config) { c.Analytics.VolWindow = 1 }},
		{"long sma shorter than short", func(c *Config) { c.Analytics.LongSMA = 10 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"unknown range", func(c *Config) { c.DataSource.Range = "3w" }},
		{"bot token without chat", func(c *Config) { c.Telegram.BotToken = "tok" }},
		{"empty out dir", func(c *Config) { c.Paths.OutDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.applyDefaults()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv("PRICELENS_CONFIG", "")
	assert.Equal(t, DefaultPath, ResolvePath(""))
	t.Setenv("PRICELENS_CONFIG", "/etc/pricelens.yaml")
	assert.Equal(t, "/etc/pricelens.yaml", ResolvePath(""))
	assert.Equal(t, "mine.yaml", ResolvePath("mine.yaml"))
}
