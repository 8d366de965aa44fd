package notifier

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dailyreminder/internal/application/service"
	"dailyreminder/internal/domain/entity"
	appErrors "dailyreminder/internal/pkg/errors"
)

// Router dispatches a notification to the transport named by the recipient's channel prefix.
type Router struct {
	mu       sync.RWMutex
	channels map[string]service.Notifier
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{channels: make(map[string]service.Notifier)}
}

// Register binds channel to n, replacing any earlier binding.
func (r *Router) Register(channel string, n service.Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[channel] = n
}

// Channels lists the registered channel names, sorted.
func (r *Router) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.channels))
	for name := range r.channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Notify implements service.Notifier.
func (r *Router) Notify(ctx context.Context, id entity.RecipientID, text string) error {
	channel := id.Channel()
	r.mu.RLock()
	n, ok := r.channels[channel]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q (recipient %s)", appErrors.ErrUnknownChannel, channel, id)
	}
	return n.Notify(ctx, id, text)
}
