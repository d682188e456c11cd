package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PRICELENS_PATHS_OUT_DIR.
const EnvPrefix = "PRICELENS"

// DefaultPath is used when neither a flag nor PRICELENS_CONFIG names a file.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Paths struct {
		RawFile string `yaml:"raw_file" envconfig:"RAW_FILE" validate:"required"`
		Sheet   string `yaml:"sheet" envconfig:"SHEET"`
		OutDir  string `yaml:"out_dir" envconfig:"OUT_DIR" validate:"required"`
	} `yaml:"paths" envconfig:"PATHS"`
	Analytics struct {
		PriceField  string  `yaml:"price_field" envconfig:"PRICE_FIELD"`
		RiskFree    float64 `yaml:"risk_free" envconfig:"RISK_FREE"`
		VolWindow   int     `yaml:"vol_window" envconfig:"VOL_WINDOW" validate:"gte=2"`
		ShortSMA    int     `yaml:"short_sma" envconfig:"SHORT_SMA" validate:"gte=1"`
		LongSMA     int     `yaml:"long_sma" envconfig:"LONG_SMA" validate:"gtefield=ShortSMA"`
		TradingDays int     `yaml:"trading_days" envconfig:"TRADING_DAYS" validate:"gte=1"`
	} `yaml:"analytics" envconfig:"ANALYTICS"`
	Report struct {
		PDF bool `yaml:"pdf" envconfig:"PDF"`
	} `yaml:"report" envconfig:"REPORT"`
	DataSource struct {
		Symbol string `yaml:"symbol" envconfig:"SYMBOL"`
		Range  string `yaml:"range" envconfig:"RANGE" validate:"oneof=1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
	} `yaml:"data_source" envconfig:"DATA_SOURCE"`
	Schedule struct {
		Cron string `yaml:"cron" envconfig:"CRON"`
	} `yaml:"schedule" envconfig:"SCHEDULE"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database" envconfig:"DATABASE"`
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"CHAT_ID" validate:"required_with=BotToken"`
	} `yaml:"telegram" envconfig:"TELEGRAM"`
	Logging struct {
		Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=console json"`
	} `yaml:"logging" envconfig:"LOGGING"`
	Proxy string `yaml:"proxy" envconfig:"PROXY"`
}

// ResolvePath picks the config file: explicit flag value, then
// PRICELENS_CONFIG, then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvPrefix + "_CONFIG"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" && cfg.Proxy == "" {
		cfg.Proxy = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Paths.RawFile == "" {
		c.Paths.RawFile = "data/yahoo_data.xlsx"
	}
	if c.Paths.OutDir == "" {
		c.Paths.OutDir = "outputs"
	}
	if c.Analytics.VolWindow == 0 {
		c.Analytics.VolWindow = 30
	}
	if c.Analytics.ShortSMA == 0 {
		c.Analytics.ShortSMA = 50
	}
	if c.Analytics.LongSMA == 0 {
		c.Analytics.LongSMA = 200
	}
	if c.Analytics.TradingDays == 0 {
		c.Analytics.TradingDays = 252
	}
	if c.DataSource.Range == "" {
		c.DataSource.Range = "5y"
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 30 18 * * 1-5"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ProcessedPath is where the ingest stage writes the normalized series.
func (c *Config) ProcessedPath() string {
	return filepath.Join(c.Paths.OutDir, "processed_prices.csv")
}

// KPIPath is the one-row KPI summary CSV.
func (c *Config) KPIPath() string {
	return filepath.Join(c.Paths.OutDir, "kpis_summary.csv")
}

// TimeSeriesPath is the per-date analytics CSV.
func (c *Config) TimeSeriesPath() string {
	return filepath.Join(c.Paths.OutDir, "timeseries_summary.csv")
}

// PDFPath is the optional dashboard document.
func (c *Config) PDFPath() string {
	return filepath.Join(c.Paths.OutDir, "dashboard.pdf")
}
