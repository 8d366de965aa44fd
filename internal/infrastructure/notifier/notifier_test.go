package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dailyreminder/internal/domain/entity"
	appErrors "dailyreminder/internal/pkg/errors"
)

type stubNotifier struct {
	mu   sync.Mutex
	got  []entity.RecipientID
	fail error
}

func (s *stubNotifier) Notify(_ context.Context, id entity.RecipientID, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, id)
	return s.fail
}

func TestRouterRoutesByChannel(t *testing.T) {
	tg, ln := &stubNotifier{}, &stubNotifier{}
	r := NewRouter()
	r.Register("telegram", tg)
	r.Register("line", ln)

	ctx := context.Background()
	if err := r.Notify(ctx, "telegram:42", "hi"); err != nil {
		t.Fatalf("Notify telegram: %v", err)
	}
	if err := r.Notify(ctx, "line:U1", "hi"); err != nil {
		t.Fatalf("Notify line: %v", err)
	}
	if len(tg.got) != 1 || tg.got[0] != "telegram:42" {
		t.Errorf("telegram got %v", tg.got)
	}
	if len(ln.got) != 1 || ln.got[0] != "line:U1" {
		t.Errorf("line got %v", ln.got)
	}
	if got := r.Channels(); len(got) != 2 || got[0] != "line" || got[1] != "telegram" {
		t.Errorf("Channels = %v", got)
	}
}

func TestRouterUnknownChannel(t *testing.T) {
	r := NewRouter()
	r.Register("telegram", &stubNotifier{})

	for _, id := range []entity.RecipientID{"sms:555", "no-prefix"} {
		if err := r.Notify(context.Background(), id, "hi"); !errors.Is(err, appErrors.ErrUnknownChannel) {
			t.Errorf("Notify(%s) err = %v, want ErrUnknownChannel", id, err)
		}
	}
}

func TestRouterPropagatesTransportError(t *testing.T) {
	r := NewRouter()
	r.Register("telegram", &stubNotifier{fail: appErrors.ErrNotifyFailed})
	if err := r.Notify(context.Background(), "telegram:1", "hi"); !errors.Is(err, appErrors.ErrNotifyFailed) {
		t.Fatalf("err = %v, want ErrNotifyFailed", err)
	}
}

func TestThrottledForwards(t *testing.T) {
	next := &stubNotifier{}
	th := NewThrottled(next, 0, 0)
	for i := 0; i < 5; i++ {
		if err := th.Notify(context.Background(), "telegram:1", "hi"); err != nil {
			t.Fatalf("Notify #%d: %v", i, err)
		}
	}
	if len(next.got) != 5 {
		t.Fatalf("forwarded %d, want 5", len(next.got))
	}
}

func TestThrottledHonorsContext(t *testing.T) {
	next := &stubNotifier{}
	th := NewThrottled(next, 0.01, 1)

	if err := th.Notify(context.Background(), "telegram:1", "hi"); err != nil {
		t.Fatalf("first Notify: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := th.Notify(ctx, "telegram:1", "hi"); !errors.Is(err, appErrors.ErrNotifyFailed) {
		t.Fatalf("second Notify err = %v, want ErrNotifyFailed", err)
	}
	if len(next.got) != 1 {
		t.Fatalf("forwarded %d, want 1", len(next.got))
	}
}
