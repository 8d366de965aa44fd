package repository

import (
	"context"
	"dailyreminder/internal/domain/entity"
)

// ScheduleRepository defines the durable store of daily reminder times.
// Callers validate times before writing; the repository only reports storage faults.
type ScheduleRepository interface {
	// UpsertDefault inserts the default time if the recipient has no schedule yet.
	// An existing schedule is left untouched.
	UpsertDefault(ctx context.Context, id entity.RecipientID) error
	// Set inserts or replaces the recipient's time.
	Set(ctx context.Context, id entity.RecipientID, t entity.TimeOfDay) error
	// Get returns the recipient's time; found is false if none is set.
	Get(ctx context.Context, id entity.RecipientID) (t entity.TimeOfDay, found bool, err error)
	// Delete removes the recipient's schedule. Deleting a missing schedule is not an error.
	Delete(ctx context.Context, id entity.RecipientID) error
	// Update replaces oldTime with newTime only if the stored time equals oldTime.
	// It reports whether the replacement happened.
	Update(ctx context.Context, id entity.RecipientID, oldTime, newTime entity.TimeOfDay) (bool, error)
	// ListMatching returns every recipient whose stored time equals t.
	ListMatching(ctx context.Context, t entity.TimeOfDay) ([]entity.RecipientID, error)
	// Close releases the underlying storage handle.
	Close() error
}
