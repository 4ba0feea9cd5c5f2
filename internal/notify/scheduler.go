package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Runner is a unit of periodic work.
type Runner interface {
	RunOnce(ctx context.Context) (Result, error)
}

// Scheduler wraps robfig/cron and runs the dispatcher on a fixed spec.
// Overlapping ticks are skipped while a run is still in progress.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
	log    *slog.Logger
}

// NewScheduler creates a Scheduler that fires runner on spec
// (standard five-field cron or descriptors such as "@every 1m").
func NewScheduler(runner Runner, spec string, log *slog.Logger) *Scheduler {
	cl := cronLogger{log: log.With("job", "notify")}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		runner: runner,
		spec:   spec,
		log:    log,
	}
}

// Start registers the job and starts the scheduler. ctx is handed to every
// run, so cancelling it aborts in-flight batches.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("notify.Scheduler.Start: %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info("scheduler started", "job", "notify", "spec", s.spec)
	return nil
}

// Stop halts the schedule and returns a context that is done once any
// running job has finished.
func (s *Scheduler) Stop() context.Context {
	ctx := s.cron.Stop()
	s.log.Info("scheduler stopped", "job", "notify")
	return ctx
}

func (s *Scheduler) run(ctx context.Context) {
	res, err := s.runner.RunOnce(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "dispatch failed", "job", "notify", "error", err)
		return
	}
	if res.Sent+res.Retried+res.Failed > 0 {
		s.log.InfoContext(ctx, "dispatch complete", "job", "notify",
			"sent", res.Sent, "retried", res.Retried, "failed", res.Failed)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "error", err)...)
}
