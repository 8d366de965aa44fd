package database

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"dailyreminder/internal/domain/constant"
	"dailyreminder/internal/domain/entity"
	"dailyreminder/internal/domain/repository"
	"dailyreminder/internal/pkg/logger"
)

func openTestRepo(t *testing.T, path string) repository.ScheduleRepository {
	t.Helper()
	db, err := Open(Config{Driver: DriverSQLite, DSN: path, LogLevel: "silent"}, logger.NewNop())
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	repo := NewScheduleRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newTestRepo(t *testing.T) repository.ScheduleRepository {
	t.Helper()
	return openTestRepo(t, filepath.Join(t.TempDir(), "schedulers.db"))
}

func mustGet(t *testing.T, repo repository.ScheduleRepository, id entity.RecipientID) (entity.TimeOfDay, bool) {
	t.Helper()
	got, found, err := repo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get(%s): %v", id, err)
	}
	return got, found
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, tod := range []entity.TimeOfDay{"08:00", "23:59", "00:00"} {
		if err := repo.Set(ctx, "telegram:42", tod); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, found := mustGet(t, repo, "telegram:42")
		if !found || got != tod {
			t.Fatalf("Get = (%q, %v), want (%q, true)", got, found, tod)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Delete(ctx, "telegram:never-registered"); err != nil {
		t.Fatalf("Delete of missing recipient: %v", err)
	}
	if _, found := mustGet(t, repo, "telegram:never-registered"); found {
		t.Fatal("expected not set")
	}

	if err := repo.Set(ctx, "telegram:1", "10:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.Delete(ctx, "telegram:1"); err != nil {
			t.Fatalf("Delete #%d: %v", i, err)
		}
	}
	if _, found := mustGet(t, repo, "telegram:1"); found {
		t.Fatal("expected not set after delete")
	}
}

func TestUpsertDefault(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.UpsertDefault(ctx, "line:U1"); err != nil {
			t.Fatalf("UpsertDefault #%d: %v", i, err)
		}
	}
	got, found := mustGet(t, repo, "line:U1")
	if !found || got != constant.DefaultTimeOfDay {
		t.Fatalf("Get = (%q, %v), want default", got, found)
	}

	if err := repo.Set(ctx, "line:U2", "06:30"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.UpsertDefault(ctx, "line:U2"); err != nil {
		t.Fatalf("UpsertDefault: %v", err)
	}
	if got, _ := mustGet(t, repo, "line:U2"); got != "06:30" {
		t.Fatalf("UpsertDefault overwrote explicit value: got %q", got)
	}
}

func TestConditionalUpdate(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "telegram:7", "09:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ok, err := repo.Update(ctx, "telegram:7", "09:00", "10:00")
	if err != nil || !ok {
		t.Fatalf("Update(09:00->10:00) = (%v, %v), want (true, nil)", ok, err)
	}
	if got, _ := mustGet(t, repo, "telegram:7"); got != "10:00" {
		t.Fatalf("Get = %q, want 10:00", got)
	}

	ok, err = repo.Update(ctx, "telegram:7", "09:00", "11:00")
	if err != nil || ok {
		t.Fatalf("stale Update = (%v, %v), want (false, nil)", ok, err)
	}
	if got, _ := mustGet(t, repo, "telegram:7"); got != "10:00" {
		t.Fatalf("stale Update changed value to %q", got)
	}

	ok, err = repo.Update(ctx, "telegram:missing", "09:00", "11:00")
	if err != nil || ok {
		t.Fatalf("Update of missing recipient = (%v, %v), want (false, nil)", ok, err)
	}
	if _, found := mustGet(t, repo, "telegram:missing"); found {
		t.Fatal("Update must not create a schedule")
	}
}

func TestConditionalUpdateSameValue(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "telegram:8", "09:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	ok, err := repo.Update(ctx, "telegram:8", "09:00", "09:00")
	if err != nil || !ok {
		t.Fatalf("Update to same value = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestConcurrentConditionalUpdateHasOneWinner(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, "telegram:9", "09:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	targets := []entity.TimeOfDay{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}
	var (
		wg      sync.WaitGroup
		winners atomic.Int32
		winner  atomic.Value
	)
	for _, target := range targets {
		wg.Add(1)
		go func(to entity.TimeOfDay) {
			defer wg.Done()
			ok, err := repo.Update(ctx, "telegram:9", "09:00", to)
			if err != nil {
				t.Errorf("Update: %v", err)
				return
			}
			if ok {
				winners.Add(1)
				winner.Store(to)
			}
		}(target)
	}
	wg.Wait()

	if n := winners.Load(); n != 1 {
		t.Fatalf("winners = %d, want exactly 1", n)
	}
	if got, _ := mustGet(t, repo, "telegram:9"); got != winner.Load().(entity.TimeOfDay) {
		t.Fatalf("stored %q, winner was %q", got, winner.Load())
	}
}

func TestListMatching(t *testing.T) {
	t.Parallel()
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := map[entity.RecipientID]entity.TimeOfDay{
		"telegram:3": "12:00",
		"line:Ub":    "12:00",
		"telegram:1": "12:01",
		"telegram:2": "12:00",
	}
	for id, tod := range seed {
		if err := repo.Set(ctx, id, tod); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	// Moved away from 12:00; must no longer match.
	if err := repo.Set(ctx, "telegram:3", "18:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := repo.ListMatching(ctx, "12:00")
	if err != nil {
		t.Fatalf("ListMatching: %v", err)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []entity.RecipientID{"line:Ub", "telegram:2"}
	if len(got) != len(want) {
		t.Fatalf("ListMatching = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ListMatching = %v, want %v", got, want)
		}
	}

	none, err := repo.ListMatching(ctx, "03:33")
	if err != nil {
		t.Fatalf("ListMatching: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("ListMatching(03:33) = %v, want empty", none)
	}
}

func TestSchedulesSurviveReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "schedulers.db")
	ctx := context.Background()

	db, err := Open(Config{Driver: DriverSQLite, DSN: path, LogLevel: "silent"}, logger.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first := NewScheduleRepository(db)
	if err := first.Set(ctx, "telegram:42", "08:00"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := openTestRepo(t, path)
	if got, found := mustGet(t, second, "telegram:42"); !found || got != "08:00" {
		t.Fatalf("after reopen Get = (%q, %v), want (08:00, true)", got, found)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "oracle", DSN: "x"}, logger.NewNop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestWithSQLitePragmas(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dsn  string
		want string
	}{
		{"a.db", "a.db?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"},
		{"a.db?cache=shared", "a.db?cache=shared&_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"},
		{"a.db?_journal_mode=DELETE&_busy_timeout=1&_synchronous=FULL", "a.db?_journal_mode=DELETE&_busy_timeout=1&_synchronous=FULL"},
	}
	for _, tt := range tests {
		if got := withSQLitePragmas(tt.dsn); got != tt.want {
			t.Fatalf("withSQLitePragmas(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}
