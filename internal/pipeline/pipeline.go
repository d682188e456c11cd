// Package pipeline wires ingestion, analytics, rendering, reporting and run
// history into the batch stages the CLI and scheduler execute.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"

	"PriceLens/internal/calculator"
	"PriceLens/internal/chart"
	"PriceLens/internal/config"
	"PriceLens/internal/ingest"
	"PriceLens/internal/model"
	"PriceLens/internal/notifier"
	"PriceLens/internal/recorder"
	"PriceLens/internal/report"
)

// Notifier delivers the KPI message after a run.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// RenderFunc draws the chart set for a series into dir.
type RenderFunc func(ctx context.Context, dir string, s *model.PriceSeries, d *model.DerivedSeries) ([]string, error)

// Result carries everything one analysis produced.
type Result struct {
	Series  *model.PriceSeries
	Derived *model.DerivedSeries
	KPI     *model.KPISummary
	Charts  []string
	PDF     string
	Run     *recorder.RunRecord
}

// Runner executes the pipeline stages for one configuration. Runs are
// serialized so a cron tick and a manual trigger never write the same
// outputs at once.
type Runner struct {
	Cfg      *config.Config
	Engine   *calculator.Engine
	Render   RenderFunc
	Recorder recorder.Recorder
	Notifier Notifier // nil disables notifications

	mu sync.Mutex
}

// EngineOptions maps the analytics config section onto engine options.
func EngineOptions(cfg *config.Config) calculator.Options {
	a := cfg.Analytics
	return calculator.Options{
		VolWindow:   a.VolWindow,
		ShortSMA:    a.ShortSMA,
		LongSMA:     a.LongSMA,
		TradingDays: a.TradingDays,
		RiskFree:    a.RiskFree,
	}
}

// NewRunner builds a Runner for cfg. A nil recorder records nothing.
func NewRunner(cfg *config.Config, rec recorder.Recorder, n Notifier) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Runner{
		Cfg:      cfg,
		Engine:   calculator.NewEngine(EngineOptions(cfg)),
		Render:   chart.RenderAll,
		Recorder: rec,
		Notifier: n,
	}
}

// Ingest normalizes the raw spreadsheet into the processed CSV.
func (r *Runner) Ingest(ctx context.Context) (*ingest.Frame, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ingest(ctx)
}

// Analyze reads the processed CSV and writes every analysis artifact.
func (r *Runner) Analyze(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.analyze(ctx)
}

// Run executes Ingest followed by Analyze.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	if _, err := r.ingest(ctx); err != nil {
		return nil, err
	}
	res, err := r.analyze(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("pipeline finished")
	return res, nil
}

func (r *Runner) ingest(ctx context.Context) (*ingest.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := ingest.Ingest(r.Cfg.Paths.RawFile, r.Cfg.Paths.Sheet, r.Cfg.ProcessedPath())
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return f, nil
}

func (r *Runner) analyze(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source := r.Cfg.ProcessedPath()
	series, err := ingest.LoadSeries(source, r.Cfg.Analytics.PriceField)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	derived, kpi, err := r.Engine.Analyze(series)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", source, err)
	}
	log.Info().
		Str("field", series.Field).
		Int("rows", series.Len()).
		Float64("cagr", kpi.CAGR).
		Float64("annual_vol", kpi.AnnualVol).
		Float64("max_drawdown", kpi.MaxDrawdown).
		Msg("computed KPIs")

	if err := report.WriteKPIs(r.Cfg.KPIPath(), kpi); err != nil {
		return nil, err
	}
	if err := report.WriteTimeSeries(r.Cfg.TimeSeriesPath(), series, derived); err != nil {
		return nil, err
	}

	res := &Result{Series: series, Derived: derived, KPI: kpi}
	res.Charts, err = r.Render(ctx, r.Cfg.Paths.OutDir, series, derived)
	if err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}

	if r.Cfg.Report.PDF {
		res.PDF = r.Cfg.PDFPath()
		if err := report.WritePDF(res.PDF, report.Dashboard{
			Title:      "Performance Dashboard",
			PriceField: series.Field,
			KPI:        kpi,
			Charts:     res.Charts,
			Generated:  time.Now(),
		}); err != nil {
			return nil, err
		}
	}

	res.Run = recorder.NewRunRecord(source, series.Field, series.Len(), kpi)
	if err := r.Recorder.RecordRun(res.Run); err != nil {
		log.Error().Err(err).Str("run", res.Run.ID).Msg("record run")
	}
	if r.Notifier != nil {
		if err := r.Notifier.SendWithRetry(ctx, notifier.FormatKPIReport(series.Field, kpi), 3); err != nil {
			log.Error().Err(err).Msg("send KPI notification")
		}
	}
	return res, nil
}
