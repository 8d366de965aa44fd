package service

import (
	"context"
)

// SchedulerService drives the dispatcher once per wall-clock minute.
type SchedulerService interface {
	// Start registers the tick job and starts firing. Calling it twice is an error.
	Start() error
	// Stop stops firing and waits for a running pass, or until ctx is done.
	Stop(ctx context.Context) error
}
