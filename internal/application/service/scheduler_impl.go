package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dailyreminder/internal/infrastructure/scheduler"
	appErrors "dailyreminder/internal/pkg/errors"
	"dailyreminder/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// tickSpec fires at second zero of every minute.
const tickSpec = "* * * * *"

type schedulerService struct {
	cronScheduler *scheduler.Scheduler
	dispatcher    ReminderDispatcher
	log           logger.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	running bool
	// Every pass runs under baseCtx; Stop cancels it.
	baseCtx context.Context
	cancel  context.CancelFunc
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(
	cronScheduler *scheduler.Scheduler,
	dispatcher ReminderDispatcher,
	log logger.Logger,
) SchedulerService {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &schedulerService{
		cronScheduler: cronScheduler,
		dispatcher:    dispatcher,
		log:           log,
		baseCtx:       baseCtx,
		cancel:        cancel,
	}
}

// Start registers the per-minute tick and starts the cron loop.
func (s *schedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("%w: scheduler already started", appErrors.ErrScheduling)
	}
	id, err := s.cronScheduler.AddJob(tickSpec, s.tick)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	if s.baseCtx.Err() != nil {
		s.baseCtx, s.cancel = context.WithCancel(context.Background())
	}
	s.entryID = id
	s.running = true
	s.cronScheduler.Start()
	s.log.Info("reminder ticks scheduled", zap.String("spec", tickSpec))
	return nil
}

// Stop removes the tick, cancels a running pass and waits for it to return.
func (s *schedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.cronScheduler.RemoveJob(s.entryID)
	s.running = false
	s.cancel()
	s.mu.Unlock()

	return s.cronScheduler.Stop(ctx)
}

// tick runs a single dispatcher pass. A pass has no deadline of its own;
// a slow one only delays the next tick. Errors never stop future ticks.
func (s *schedulerService) tick() {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if _, err := s.dispatcher.RunPass(ctx); err != nil {
		if errors.Is(err, appErrors.ErrPassInProgress) {
			s.log.Warn("previous pass still running, tick skipped")
			return
		}
		s.log.Error("dispatcher pass failed", err)
	}
}
