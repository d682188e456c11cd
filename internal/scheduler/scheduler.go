package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phuslu/log"
	"github.com/robfig/cron/v3"

	"PriceLens/internal/collector"
	"PriceLens/internal/notifier"
	"PriceLens/internal/pipeline"
	"PriceLens/internal/recorder"
)

// Scheduler re-runs the pipeline on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Runner    *pipeline.Runner
	Collector *collector.Collector // nil skips the fetch step
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner *pipeline.Runner, col *collector.Collector, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Runner:    runner,
		Collector: col,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// Register schedules the pipeline run. spec uses six fields, seconds first.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runTask); err != nil {
		return fmt.Errorf("register run task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the scheduled task immediately.
func (s *Scheduler) RunNow() error {
	return s.run()
}

func (s *Scheduler) runTask() {
	if err := s.run(); err != nil {
		log.Error().Err(err).Msg("scheduled run")
	}
}

func (s *Scheduler) run() error {
	log.Info().Msg("running pipeline task")
	if s.Collector != nil {
		if _, err := s.Collector.Collect(s.Ctx, s.Runner.Cfg.Paths.RawFile); err != nil {
			s.trySend(fmt.Sprintf("❌ data fetch failed: %v", err))
			return fmt.Errorf("collect: %w", err)
		}
	}
	if _, err := s.Runner.Run(s.Ctx); err != nil {
		s.trySend(fmt.Sprintf("❌ pipeline run failed: %v", err))
		return err
	}
	return nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	cmd := strings.ToLower(strings.TrimSpace(command))
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i] // "/kpi@PriceLensBot" in group chats
	}
	switch cmd {
	case "/kpi":
		run, err := s.Recorder.Latest()
		if errors.Is(err, recorder.ErrNoRuns) {
			return "No runs recorded yet. Send /run first."
		}
		if err != nil {
			log.Error().Err(err).Msg("load latest run")
			return fmt.Sprintf("❌ could not load latest run: %v", err)
		}
		return notifier.FormatKPIReport(run.PriceField, &run.KPI)
	case "/run":
		// the runner sends the KPI report itself on success
		if err := s.run(); err != nil {
			log.Error().Err(err).Msg("manual run")
		}
		return ""
	case "/history":
		runs, err := s.Recorder.List(5)
		if err != nil {
			log.Error().Err(err).Msg("list runs")
			return fmt.Sprintf("❌ could not list runs: %v", err)
		}
		return notifier.FormatHistory(runs)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
