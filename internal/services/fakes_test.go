package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for the Mongo repos so service tests
// run without a database. failWith, when set, makes every call fail; the
// browse fail-fast test uses it.
type fakeStore struct {
	mu         sync.Mutex
	events     map[string]models.Event
	attendance map[string]map[uuid.UUID]time.Time // eventID -> userID -> joinedAt
	comments   map[string][]models.Comment
	failWith   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:     make(map[string]models.Event),
		attendance: make(map[string]map[uuid.UUID]time.Time),
		comments:   make(map[string][]models.Comment),
	}
}

func (f *fakeStore) CreateEvent(ctx context.Context, event *models.Event) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return "", f.failWith
	}
	id := primitive.NewObjectID().Hex()
	ev := *event
	ev.ID = id
	f.events[id] = ev
	return id, nil
}

func (f *fakeStore) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	ev, ok := f.events[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "event not found")
	}
	out := ev
	return &out, nil
}

func (f *fakeStore) ReplaceEvent(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.events[event.ID]; !ok {
		return apperr.New(apperr.NotFound, "event not found")
	}
	f.events[event.ID] = *event
	return nil
}

func (f *fakeStore) DeleteEvent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) snapshot(filter func(models.Event) bool, less func(a, b models.Event) bool, limit int64) []*models.Event {
	var matched []models.Event
	for _, ev := range f.events {
		if filter(ev) {
			matched = append(matched, ev)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	out := make([]*models.Event, len(matched))
	for i := range matched {
		ev := matched[i]
		out[i] = &ev
	}
	return out
}

func (f *fakeStore) ListPublicUpcoming(ctx context.Context, now time.Time, limit int64) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.snapshot(
		func(e models.Event) bool { return e.Public && e.EndTime.After(now) },
		func(a, b models.Event) bool { return a.EndTime.Before(b.EndTime) },
		limit,
	), nil
}

func (f *fakeStore) ListPublicPast(ctx context.Context, now time.Time, limit int64) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.snapshot(
		func(e models.Event) bool { return e.Public && e.EndTime.Before(now) },
		func(a, b models.Event) bool { return a.EndTime.After(b.EndTime) },
		limit,
	), nil
}

func (f *fakeStore) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int64) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.snapshot(
		func(e models.Event) bool { return e.CreatorID == creatorID },
		func(a, b models.Event) bool { return a.StartTime.After(b.StartTime) },
		limit,
	), nil
}

func (f *fakeStore) ListPastByCreator(ctx context.Context, creatorID uuid.UUID, now time.Time, limit int64) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.snapshot(
		func(e models.Event) bool { return e.CreatorID == creatorID && e.EndTime.Before(now) },
		func(a, b models.Event) bool { return a.EndTime.After(b.EndTime) },
		limit,
	), nil
}

func (f *fakeStore) UpsertAttendance(ctx context.Context, eventID string, userID uuid.UUID, joinedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if f.attendance[eventID] == nil {
		f.attendance[eventID] = make(map[uuid.UUID]time.Time)
	}
	f.attendance[eventID][userID] = joinedAt
	return nil
}

func (f *fakeStore) DeleteAttendance(ctx context.Context, eventID string, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.attendance[eventID], userID)
	return nil
}

func (f *fakeStore) CountAttendance(ctx context.Context, eventID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	return int64(len(f.attendance[eventID])), nil
}

func (f *fakeStore) IsAttending(ctx context.Context, eventID string, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.attendance[eventID][userID]
	return ok, nil
}

func (f *fakeStore) DeleteAttendanceByEvent(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.attendance, eventID)
	return nil
}

func (f *fakeStore) InsertComment(ctx context.Context, comment *models.Comment) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return "", f.failWith
	}
	id := primitive.NewObjectID().Hex()
	c := *comment
	c.ID = id
	f.comments[comment.EventID] = append(f.comments[comment.EventID], c)
	return id, nil
}

func (f *fakeStore) ListCommentsByEvent(ctx context.Context, eventID string) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	stored := f.comments[eventID]
	out := make([]*models.Comment, len(stored))
	for i := range stored {
		c := stored[i]
		out[i] = &c
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) DeleteCommentsByEvent(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.comments, eventID)
	return nil
}

// fixedClock lets tests pin "now" and move it forward.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock(t time.Time) *fixedClock {
	return &fixedClock{now: t}
}

func (fc *fixedClock) Now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.now
}

func (fc *fixedClock) Advance(d time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.now = fc.now.Add(d)
}
