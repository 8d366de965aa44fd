package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"dailyreminder/internal/domain/constant"
	"dailyreminder/internal/domain/entity"
)

var errFakeStore = errors.New("store unavailable")

// memRepo is an in-memory ScheduleRepository that counts writes.
type memRepo struct {
	mu      sync.Mutex
	rows    map[entity.RecipientID]entity.TimeOfDay
	writes  int
	listErr error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: make(map[entity.RecipientID]entity.TimeOfDay)}
}

func (r *memRepo) UpsertDefault(_ context.Context, id entity.RecipientID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if _, ok := r.rows[id]; !ok {
		r.rows[id] = constant.DefaultTimeOfDay
	}
	return nil
}

func (r *memRepo) Set(_ context.Context, id entity.RecipientID, t entity.TimeOfDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.rows[id] = t
	return nil
}

func (r *memRepo) Get(_ context.Context, id entity.RecipientID) (entity.TimeOfDay, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	return t, ok, nil
}

func (r *memRepo) Delete(_ context.Context, id entity.RecipientID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	delete(r.rows, id)
	return nil
}

func (r *memRepo) Update(_ context.Context, id entity.RecipientID, oldTime, newTime entity.TimeOfDay) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if cur, ok := r.rows[id]; !ok || cur != oldTime {
		return false, nil
	}
	r.rows[id] = newTime
	return true, nil
}

func (r *memRepo) ListMatching(_ context.Context, t entity.TimeOfDay) ([]entity.RecipientID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var ids []entity.RecipientID
	for id, tod := range r.rows {
		if tod == t {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *memRepo) Close() error { return nil }

func (r *memRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type sent struct {
	to   entity.RecipientID
	text string
}

// recordingNotifier records every attempt and fails for ids listed in failFor.
type recordingNotifier struct {
	mu      sync.Mutex
	sent    []sent
	failFor map[entity.RecipientID]error
	panicOn entity.RecipientID
	block   chan struct{}
	entered chan struct{}
}

func (n *recordingNotifier) Notify(_ context.Context, id entity.RecipientID, text string) error {
	if n.entered != nil {
		n.entered <- struct{}{}
	}
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	n.sent = append(n.sent, sent{to: id, text: text})
	n.mu.Unlock()
	if id == n.panicOn && id != "" {
		panic("transport exploded")
	}
	return n.failFor[id]
}

func (n *recordingNotifier) attempts() []sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sent(nil), n.sent...)
}
