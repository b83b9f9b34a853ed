package services

import (
	"context"
	"testing"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
)

func newReviewsService(store *fakeStore, clock *fixedClock) *ReviewsService {
	rs := NewReviewsService(store, store, store)
	rs.now = clock.Now
	return rs
}

// seedEndedEvent creates an event that ended an hour before testBase with
// the given user already in its attendance set.
func seedEndedEvent(t *testing.T, store *fakeStore, attendee uuid.UUID) string {
	t.Helper()
	id := seedEvent(t, store, "workshop", uuid.New(), true, testBase.Add(-3*time.Hour), testBase.Add(-time.Hour))
	if err := store.UpsertAttendance(context.Background(), id, attendee, testBase.Add(-2*time.Hour)); err != nil {
		t.Fatalf("seed attendance: %v", err)
	}
	return id
}

func TestAddCommentRequiresIdentity(t *testing.T) {
	store := newFakeStore()
	rs := newReviewsService(store, newFixedClock(testBase))
	id := seedEndedEvent(t, store, uuid.New())

	_, err := rs.AddComment(context.Background(), id, Reviewer{}, "great", 5)
	if !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestAddCommentEligibility(t *testing.T) {
	store := newFakeStore()
	clock := newFixedClock(testBase)
	rs := newReviewsService(store, clock)

	attendee := uuid.New()
	stranger := uuid.New()
	id := seedEndedEvent(t, store, attendee)

	ctx := context.Background()

	// The attendee of the ended event may review it.
	comment, err := rs.AddComment(ctx, id, Reviewer{ID: attendee, DisplayName: "Uma"}, "great", 5)
	if err != nil {
		t.Fatalf("attendee review rejected: %v", err)
	}
	if comment.UserName != "Uma" || comment.Rating != 5 {
		t.Errorf("comment not snapshotted correctly: %+v", comment)
	}

	// Someone who never joined gets Unauthorized at the same instant.
	_, err = rs.AddComment(ctx, id, Reviewer{ID: stranger, DisplayName: "Vic"}, "great", 5)
	if !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized for non-attendee, got %v", err)
	}
}

func TestAddCommentBeforeEventEndsIsUnauthorized(t *testing.T) {
	store := newFakeStore()
	clock := newFixedClock(testBase)
	rs := newReviewsService(store, clock)

	attendee := uuid.New()
	id := seedEvent(t, store, "future", uuid.New(), true, testBase.Add(time.Hour), testBase.Add(3*time.Hour))
	if err := store.UpsertAttendance(context.Background(), id, attendee, testBase); err != nil {
		t.Fatalf("seed attendance: %v", err)
	}

	_, err := rs.AddComment(context.Background(), id, Reviewer{ID: attendee, DisplayName: "Uma"}, "early", 4)
	if !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized before the event ends, got %v", err)
	}
}

func TestAddCommentRatingBounds(t *testing.T) {
	store := newFakeStore()
	rs := newReviewsService(store, newFixedClock(testBase))
	attendee := uuid.New()
	id := seedEndedEvent(t, store, attendee)
	reviewer := Reviewer{ID: attendee, DisplayName: "Uma"}

	ctx := context.Background()
	cases := []struct {
		rating int
		wantOK bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
	}

	for _, c := range cases {
		_, err := rs.AddComment(ctx, id, reviewer, "review", c.rating)
		if c.wantOK && err != nil {
			t.Errorf("rating %d should succeed: %v", c.rating, err)
		}
		if !c.wantOK && !apperr.IsKind(err, apperr.InvalidArgument) {
			t.Errorf("rating %d should fail InvalidArgument, got %v", c.rating, err)
		}
	}
}

func TestAverageExactMean(t *testing.T) {
	store := newFakeStore()
	clock := newFixedClock(testBase)
	rs := newReviewsService(store, clock)
	attendee := uuid.New()
	id := seedEndedEvent(t, store, attendee)
	reviewer := Reviewer{ID: attendee, DisplayName: "Uma"}

	ctx := context.Background()
	for _, rating := range []int{5, 3, 4} {
		if _, err := rs.AddComment(ctx, id, reviewer, "r", rating); err != nil {
			t.Fatalf("add rating %d: %v", rating, err)
		}
	}

	avg, count, err := rs.Average(ctx, id)
	if err != nil {
		t.Fatalf("average failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if avg != 4.0 {
		t.Errorf("average = %v, want exactly 4.0", avg)
	}
}

func TestAverageEmptyIsSentinelNotFault(t *testing.T) {
	store := newFakeStore()
	rs := newReviewsService(store, newFixedClock(testBase))
	id := seedEndedEvent(t, store, uuid.New())

	avg, count, err := rs.Average(context.Background(), id)
	if err != nil {
		t.Fatalf("empty average must not error: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want the no-rating sentinel 0", count)
	}
	if avg != 0 {
		t.Errorf("avg should be zero-valued under the sentinel, got %v", avg)
	}
}

func TestListCommentsNewestFirst(t *testing.T) {
	store := newFakeStore()
	clock := newFixedClock(testBase)
	rs := newReviewsService(store, clock)
	attendee := uuid.New()
	id := seedEndedEvent(t, store, attendee)
	reviewer := Reviewer{ID: attendee, DisplayName: "Uma"}

	ctx := context.Background()
	for i, text := range []string{"first", "second", "third"} {
		clock.Advance(time.Duration(i+1) * time.Minute)
		if _, err := rs.AddComment(ctx, id, reviewer, text, 4); err != nil {
			t.Fatalf("add %q: %v", text, err)
		}
	}

	comments, err := rs.ListComments(ctx, id)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	if comments[0].Text != "third" || comments[2].Text != "first" {
		t.Errorf("comments not newest-first: %q, %q, %q", comments[0].Text, comments[1].Text, comments[2].Text)
	}
}

func TestAddCommentDefaultsAnonymousName(t *testing.T) {
	store := newFakeStore()
	rs := newReviewsService(store, newFixedClock(testBase))
	attendee := uuid.New()
	id := seedEndedEvent(t, store, attendee)

	comment, err := rs.AddComment(context.Background(), id, Reviewer{ID: attendee}, "ok", 3)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if comment.UserName != "Anonymous" {
		t.Errorf("expected Anonymous fallback, got %q", comment.UserName)
	}
}
