package services

import (
	"context"
	"testing"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
)

func newAttendanceService(store *fakeStore, clock *fixedClock) *AttendanceService {
	as := NewAttendanceService(store, store)
	as.now = clock.Now
	return as
}

func seedAttendableEvent(t *testing.T, store *fakeStore) string {
	t.Helper()
	return seedEvent(t, store, "meetup", uuid.New(), true, testBase.Add(time.Hour), testBase.Add(3*time.Hour))
}

func TestJoinRequiresIdentity(t *testing.T) {
	store := newFakeStore()
	as := newAttendanceService(store, newFixedClock(testBase))
	id := seedAttendableEvent(t, store)

	err := as.Join(context.Background(), id, uuid.Nil)
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestJoinUnknownEventIsNotFound(t *testing.T) {
	as := newAttendanceService(newFakeStore(), newFixedClock(testBase))

	err := as.Join(context.Background(), "64a000000000000000000000", uuid.New())
	if !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestJoinThenLeaveRestoresPriorState(t *testing.T) {
	store := newFakeStore()
	clock := newFixedClock(testBase)
	as := newAttendanceService(store, clock)
	id := seedAttendableEvent(t, store)
	user := uuid.New()

	ctx := context.Background()
	before, _ := as.Count(ctx, id)

	if err := as.Join(ctx, id, user); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	attending, _ := as.IsAttending(ctx, id, user)
	if !attending {
		t.Error("expected attending=true after join")
	}
	count, _ := as.Count(ctx, id)
	if count != before+1 {
		t.Errorf("count = %d, want %d", count, before+1)
	}

	if err := as.Leave(ctx, id, user); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	attending, _ = as.IsAttending(ctx, id, user)
	if attending {
		t.Error("expected attending=false after leave")
	}
	count, _ = as.Count(ctx, id)
	if count != before {
		t.Errorf("count not restored: %d, want %d", count, before)
	}
}

func TestJoinIsIdempotentAndRefreshesJoinedAt(t *testing.T) {
	store := newFakeStore()
	clock := newFixedClock(testBase)
	as := newAttendanceService(store, clock)
	id := seedAttendableEvent(t, store)
	user := uuid.New()

	ctx := context.Background()
	if err := as.Join(ctx, id, user); err != nil {
		t.Fatalf("first join failed: %v", err)
	}

	clock.Advance(30 * time.Minute)
	if err := as.Join(ctx, id, user); err != nil {
		t.Fatalf("re-join failed: %v", err)
	}

	count, _ := as.Count(ctx, id)
	if count != 1 {
		t.Errorf("re-join must not grow the set: count = %d", count)
	}
	// Re-joining refreshes the timestamp; that is contract, not accident.
	if got := store.attendance[id][user]; !got.Equal(testBase.Add(30 * time.Minute)) {
		t.Errorf("joined_at not refreshed: %v", got)
	}
}

func TestLeaveWhenNotAttendingIsNoError(t *testing.T) {
	store := newFakeStore()
	as := newAttendanceService(store, newFixedClock(testBase))
	id := seedAttendableEvent(t, store)

	if err := as.Leave(context.Background(), id, uuid.New()); err != nil {
		t.Fatalf("leave of a non-member must be silent: %v", err)
	}
}

func TestIsAttendingAnonymousIsFalse(t *testing.T) {
	store := newFakeStore()
	as := newAttendanceService(store, newFixedClock(testBase))
	id := seedAttendableEvent(t, store)

	attending, err := as.IsAttending(context.Background(), id, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attending {
		t.Error("anonymous caller can never be attending")
	}
}
