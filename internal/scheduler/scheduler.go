// Package scheduler re-optimises a scenario portfolio on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/metrics"
	"github.com/guttosm/epq-service/internal/scenario"
	"github.com/guttosm/epq-service/internal/service"
)

// DefaultRunTimeout bounds a single scheduled run.
const DefaultRunTimeout = time.Minute

// ErrNoScenario is returned when no scenario path is configured.
var ErrNoScenario = errors.New("scheduler: no scenario configured")

// EntryLogger receives audit entries for scheduled runs.
type EntryLogger interface {
	Log(entry *model.LogEntry) bool
}

// Config describes what a scheduled run optimises.
type Config struct {
	// Cron accepts five or six fields and descriptors such as @daily.
	Cron string
	// ScenarioPath is reloaded on every run.
	ScenarioPath string
	// DemandCSV, when set, overrides every item's demand with the estimate.
	DemandCSV  string
	RunTimeout time.Duration
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDemandEstimator replaces the default CSV estimator.
func WithDemandEstimator(e service.DemandEstimator) Option {
	return func(s *Scheduler) {
		if e != nil {
			s.demand = e
		}
	}
}

// WithAuditLogger records an audit entry per run.
func WithAuditLogger(l EntryLogger) Option {
	return func(s *Scheduler) { s.audit = l }
}

// Scheduler manages the periodic portfolio optimisation.
type Scheduler struct {
	cron      *cron.Cron
	cfg       Config
	optimizer service.CostOptimizer
	history   service.HistoryService
	demand    service.DemandEstimator
	audit     EntryLogger

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

// New creates a Scheduler and registers its job.
func New(optimizer service.CostOptimizer, history service.HistoryService, cfg Config, opts ...Option) (*Scheduler, error) {
	if cfg.ScenarioPath == "" {
		return nil, ErrNoScenario
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}

	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	l := cronLogger{}
	s := &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
			cron.WithLogger(l),
		),
		cfg:       cfg,
		optimizer: optimizer,
		history:   history,
		demand:    service.NewCSVDemandEstimator(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.cron.AddFunc(cfg.Cron, s.tick); err != nil {
		return nil, fmt.Errorf("register schedule %q: %w", cfg.Cron, err)
	}
	return s, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Str("cron", s.cfg.Cron).Str("scenario", s.cfg.ScenarioPath).Msg("Scheduler started")
}

// Stop stops the scheduler and waits for a running job up to ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Info().Msg("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastRun returns the time and error of the most recent run.
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()
	_, _ = s.RunOnce(ctx)
}

// RunOnce executes one scheduled optimisation immediately.
func (s *Scheduler) RunOnce(ctx context.Context) (model.PortfolioResult, error) {
	runID := "scheduled-" + uuid.NewString()
	start := time.Now()

	result, label, err := s.run(ctx, runID)

	s.mu.Lock()
	s.lastRun, s.lastErr = start, err
	s.mu.Unlock()

	entry := &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      "info",
		Message:    "Scheduled portfolio optimisation",
		RequestID:  runID,
		Duration:   time.Since(start).Milliseconds(),
		ActionType: model.ActionScheduledRun,
		Fields: map[string]interface{}{
			"scenario": s.cfg.ScenarioPath,
			"label":    label,
		},
	}

	if err != nil {
		metrics.RecordScheduledRun("error")
		log.Error().Err(err).Str("run_id", runID).Str("scenario", s.cfg.ScenarioPath).Msg("Scheduled run failed")
		entry.Level = "error"
		entry.Error = err.Error()
		s.logAudit(entry)
		return model.PortfolioResult{}, err
	}

	metrics.RecordScheduledRun("success")
	log.Info().
		Str("run_id", runID).
		Str("label", label).
		Int("items", len(result.Items)).
		Str("total_cost", result.Display).
		Dur("duration", time.Since(start)).
		Msg("Scheduled run completed")
	entry.WithField("total_cost", result.TotalCost).WithField("items", len(result.Items))
	s.logAudit(entry)
	return result, nil
}

func (s *Scheduler) run(ctx context.Context, runID string) (model.PortfolioResult, string, error) {
	sc, err := scenario.Load(s.cfg.ScenarioPath)
	if err != nil {
		return model.PortfolioResult{}, "", err
	}
	items := sc.Items

	if s.cfg.DemandCSV != "" {
		demand, err := s.estimateDemand(ctx)
		if err != nil {
			return model.PortfolioResult{}, sc.Label, err
		}
		items = scenario.WithDemand(items, demand)
	}

	if err := ctx.Err(); err != nil {
		return model.PortfolioResult{}, sc.Label, err
	}
	result, err := s.optimizer.OptimizePortfolio(items)
	if err != nil {
		return model.PortfolioResult{}, sc.Label, fmt.Errorf("optimize scenario %q: %w", sc.Label, err)
	}

	if s.history != nil {
		// History failures are logged by the history service; the run still succeeds.
		_ = s.history.RecordPortfolio(ctx, runID, items, result)
	}
	return result, sc.Label, nil
}

func (s *Scheduler) estimateDemand(ctx context.Context) (float64, error) {
	f, err := os.Open(s.cfg.DemandCSV)
	if err != nil {
		return 0, fmt.Errorf("open demand csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	est, err := s.demand.Estimate(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("estimate demand from %s: %w", s.cfg.DemandCSV, err)
	}
	log.Debug().Float64("annual_demand", est.AnnualDemand).Int("rows", est.Rows).Msg("Scheduled demand estimate")
	return est.AnnualDemand, nil
}

func (s *Scheduler) logAudit(entry *model.LogEntry) {
	if s.audit != nil {
		s.audit.Log(entry)
	}
}

// cronLogger routes cron's internal logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
