package models

import (
	"context"
	"strings"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
)

type Event struct {
	ID          string    `bson:"-" json:"id,omitempty"`
	Title       string    `bson:"title" json:"title" validate:"required"`
	Description string    `bson:"description" json:"description"`
	Location    string    `bson:"location" json:"location"`
	StartTime   time.Time `bson:"start_time" json:"start_time" validate:"required"`
	EndTime     time.Time `bson:"end_time" json:"end_time" validate:"required"`
	Public      bool      `bson:"public" json:"public"`
	Tags        []string  `bson:"tags" json:"tags"`
	Images      []string  `bson:"images,omitempty" json:"images,omitempty"`
	CreatorID   uuid.UUID `bson:"creator_id" json:"creator_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidateEvent runs the write-boundary checks. The time ordering rule cannot
// be expressed as a struct tag, so it lives here next to the tag validation.
func (e *Event) ValidateEvent() error {
	if err := Validate.Struct(e); err != nil {
		return apperr.Wrap(apperr.InvalidArgument, "invalid event data", err)
	}
	if !e.EndTime.After(e.StartTime) {
		return apperr.New(apperr.InvalidArgument, "end_time must be after start_time")
	}
	return nil
}

func (e *Event) Sanitize() {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Location = strings.TrimSpace(e.Location)

	tags := make([]string, 0, len(e.Tags))
	seen := make(map[string]bool, len(e.Tags))
	for _, t := range e.Tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	e.Tags = tags
}

// EventsRepo is the capability surface the event catalog and the browse
// queries need from the document store. ReplaceEvent is a full-document
// replace: fields absent from the given event are wiped, not merged.
type EventsRepo interface {
	CreateEvent(ctx context.Context, event *Event) (string, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ReplaceEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id string) error

	ListPublicUpcoming(ctx context.Context, now time.Time, limit int64) ([]*Event, error)
	ListPublicPast(ctx context.Context, now time.Time, limit int64) ([]*Event, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit int64) ([]*Event, error)
	ListPastByCreator(ctx context.Context, creatorID uuid.UUID, now time.Time, limit int64) ([]*Event, error)
}
