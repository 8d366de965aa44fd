package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"dailyreminder/internal/domain/entity"
	"dailyreminder/internal/domain/repository"
	appErrors "dailyreminder/internal/pkg/errors"
	"dailyreminder/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderTemplate is the text every recipient receives; %s is the matched time.
const reminderTemplate = "⏰ It's time! Your daily reminder for %s is here. A good moment to get back to what matters."

// ReminderText renders the notification for the given time.
func ReminderText(t entity.TimeOfDay) string {
	return fmt.Sprintf(reminderTemplate, t)
}

type reminderDispatcher struct {
	scheduleRepo repository.ScheduleRepository
	notifier     Notifier
	now          func() time.Time
	log          logger.Logger
	inFlight     atomic.Bool
}

// DispatcherOption customizes a dispatcher.
type DispatcherOption func(*reminderDispatcher)

// WithClock replaces time.Now. The minute is read in the returned time's own location.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *reminderDispatcher) {
		d.now = now
	}
}

// NewReminderDispatcher creates a new instance of ReminderDispatcher implementation.
func NewReminderDispatcher(
	scheduleRepo repository.ScheduleRepository,
	notifier Notifier,
	log logger.Logger,
	opts ...DispatcherOption,
) ReminderDispatcher {
	d := &reminderDispatcher{
		scheduleRepo: scheduleRepo,
		notifier:     notifier,
		now:          time.Now,
		log:          log,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RunPass performs one scan of the store for the current local minute.
func (d *reminderDispatcher) RunPass(ctx context.Context) (*PassReport, error) {
	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, appErrors.ErrPassInProgress
	}
	defer d.inFlight.Store(false)

	started := d.now()
	report := &PassReport{
		ID:        uuid.NewString(),
		TimeOfDay: entity.TimeOfDayFrom(started),
		StartedAt: started,
	}
	log := d.log.With(zap.String("pass_id", report.ID), zap.Stringer("time", report.TimeOfDay))

	recipients, err := d.scheduleRepo.ListMatching(ctx, report.TimeOfDay)
	if err != nil {
		// Skip this tick; the next one tries again.
		log.Error("failed to list recipients, skipping pass", err)
		return report, err
	}

	text := ReminderText(report.TimeOfDay)
	report.Results = make([]DeliveryResult, 0, len(recipients))
	for i, id := range recipients {
		if ctx.Err() != nil {
			log.Warn("pass cancelled, remaining recipients skipped", zap.Int("skipped", len(recipients)-i))
			break
		}
		res := d.deliver(ctx, id, text)
		report.Results = append(report.Results, res)
		if res.Err != nil {
			log.Error("failed to deliver reminder", res.Err, zap.Stringer("recipient", id))
			continue
		}
		log.Debug("reminder delivered", zap.Stringer("recipient", id))
	}
	report.Duration = d.now().Sub(started)

	if len(recipients) > 0 {
		log.Info("dispatcher pass complete",
			zap.Int("matched", len(recipients)),
			zap.Int("delivered", report.Delivered()),
			zap.Int("failed", report.Failed()),
			zap.Duration("took", report.Duration),
		)
	}
	return report, nil
}

// deliver turns any failure of a single send, including a panic, into a result value.
func (d *reminderDispatcher) deliver(ctx context.Context, id entity.RecipientID, text string) (res DeliveryResult) {
	res.RecipientID = id
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: panic: %v", appErrors.ErrNotifyFailed, r)
		}
	}()
	res.Err = d.notifier.Notify(ctx, id, text)
	return res
}
