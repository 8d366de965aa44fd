package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dailyreminder/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler manages cron jobs. Every job is wrapped so that a panic is
// recovered and a run still in progress makes the next firing a no-op.
type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	mu      sync.Mutex // To protect access to job management
	started bool
}

// Option customizes the underlying cron instance.
type Option func(*[]cron.Option)

// WithLocation evaluates specs in loc instead of time.Local.
func WithLocation(loc *time.Location) Option {
	return func(opts *[]cron.Option) {
		*opts = append(*opts, cron.WithLocation(loc))
	}
}

// NewScheduler creates a stopped cron scheduler. Call Start to begin firing.
func NewScheduler(log logger.Logger, opts ...Option) *Scheduler {
	cl := cronLogger{log: log}
	cronOpts := []cron.Option{
		cron.WithLogger(cl),
		cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		),
	}
	for _, opt := range opts {
		opt(&cronOpts)
	}
	return &Scheduler{
		cron: cron.New(cronOpts...),
		log:  log,
	}
}

// AddJob adds a new job to the scheduler.
// spec follows the standard 5-field cron format (e.g., "* * * * *").
// Returns the EntryID of the added job and an error if any.
func (s *Scheduler) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		s.log.Error("failed to add cron job", err, zap.String("spec", spec))
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.log.Info("added cron job", zap.Int("entry_id", int(id)), zap.String("spec", spec))
	return id, nil
}

// RemoveJob removes a job from the scheduler by its EntryID.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
	s.log.Info("removed cron job", zap.Int("entry_id", int(id)))
}

// Start begins firing jobs in a background goroutine. It is a no-op if already started.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.cron.Start()
	s.started = true
	s.log.Info("cron scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs to complete.
// It returns early with ctx's error if ctx is done first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	done := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-done.Done():
		s.log.Info("cron scheduler stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("cron scheduler stop timed out; a job is still running")
		return ctx.Err()
	}
}

// GetEntries returns the list of scheduled entries. Useful for debugging.
func (s *Scheduler) GetEntries() []cron.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron.Entries()
}

// cronLogger adapts logger.Logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	sugar := l.log.Zap().Sugar().Named("cron")
	if msg == "skip" {
		// SkipIfStillRunning dropped a firing.
		sugar.Warnw("tick skipped, previous run still in progress", keysAndValues...)
		return
	}
	sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Zap().Sugar().Named("cron").Errorw(msg, append(keysAndValues, "error", err)...)
}
