package service

import (
	"context"
	"time"

	"dailyreminder/internal/domain/entity"
)

// Notifier delivers a text to a recipient. Implementations may fail transiently.
type Notifier interface {
	Notify(ctx context.Context, recipientID entity.RecipientID, text string) error
}

// DeliveryResult is the outcome of one delivery attempt.
type DeliveryResult struct {
	RecipientID entity.RecipientID
	Err         error
}

// PassReport summarizes one dispatcher pass.
type PassReport struct {
	ID        string
	TimeOfDay entity.TimeOfDay
	StartedAt time.Time
	Duration  time.Duration
	Results   []DeliveryResult
}

// Delivered counts successful attempts.
func (r *PassReport) Delivered() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts attempts that returned an error.
func (r *PassReport) Failed() int {
	return len(r.Results) - r.Delivered()
}

// ReminderDispatcher runs one scan-and-deliver pass.
type ReminderDispatcher interface {
	// RunPass delivers the reminder to every recipient registered for the
	// current minute. It returns ErrPassInProgress if another pass is running.
	RunPass(ctx context.Context) (*PassReport, error)
}
