package notifier

import (
	"context"
	"fmt"

	"dailyreminder/internal/application/service"
	"dailyreminder/internal/domain/entity"
	appErrors "dailyreminder/internal/pkg/errors"

	"golang.org/x/time/rate"
)

// Throttled limits the rate of outbound sends across all channels.
type Throttled struct {
	next    service.Notifier
	limiter *rate.Limiter
}

// NewThrottled wraps next with a token bucket of perSec tokens per second and the given burst.
// A non-positive perSec disables limiting.
func NewThrottled(next service.Notifier, perSec float64, burst int) *Throttled {
	limit := rate.Inf
	if perSec > 0 {
		limit = rate.Limit(perSec)
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(limit, burst)}
}

// Notify waits for a token, then forwards to the wrapped notifier.
func (t *Throttled) Notify(ctx context.Context, id entity.RecipientID, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limit wait: %v", appErrors.ErrNotifyFailed, err)
	}
	return t.next.Notify(ctx, id, text)
}
