package service

import (
	"context"
	"dailyreminder/internal/application/dto"
	"dailyreminder/internal/domain/entity"
)

// ScheduleService defines the command-side operations on a recipient's schedule.
// Raw times are validated here, before anything reaches the repository.
type ScheduleService interface {
	// Register stores the default time if the recipient has none, and returns the current time.
	Register(ctx context.Context, id entity.RecipientID) (entity.TimeOfDay, error)
	// SetTime validates and stores the requested time, replacing any previous one.
	SetTime(ctx context.Context, req dto.SetScheduleRequest) (entity.TimeOfDay, error)
	// GetSchedule returns the recipient's schedule, with IsSet false if none exists.
	GetSchedule(ctx context.Context, id entity.RecipientID) (dto.ScheduleResponse, error)
	// DeleteSchedule removes the recipient's schedule. Missing schedules are not an error.
	DeleteSchedule(ctx context.Context, id entity.RecipientID) error
	// UpdateTime replaces OldTime with NewTime only if OldTime is what is stored.
	UpdateTime(ctx context.Context, req dto.UpdateScheduleRequest) (dto.UpdateScheduleResponse, error)
}
