package models

import (
	"testing"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
)

func validTestEvent() *Event {
	start := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	return &Event{
		Title:     "neighborhood cleanup",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Public:    true,
		CreatorID: uuid.New(),
	}
}

func TestValidateEvent(t *testing.T) {
	if err := validTestEvent().ValidateEvent(); err != nil {
		t.Fatalf("valid event rejected: %v", err)
	}

	missing := validTestEvent()
	missing.Title = ""
	if err := missing.ValidateEvent(); !apperr.IsKind(err, apperr.InvalidArgument) {
		t.Errorf("missing title should be InvalidArgument, got %v", err)
	}

	inverted := validTestEvent()
	inverted.EndTime = inverted.StartTime.Add(-time.Hour)
	if err := inverted.ValidateEvent(); !apperr.IsKind(err, apperr.InvalidArgument) {
		t.Errorf("end before start should be InvalidArgument, got %v", err)
	}

	zero := validTestEvent()
	zero.EndTime = zero.StartTime
	if err := zero.ValidateEvent(); !apperr.IsKind(err, apperr.InvalidArgument) {
		t.Errorf("zero-length event should be InvalidArgument, got %v", err)
	}
}

func TestSanitizeTrimsAndDedupesTags(t *testing.T) {
	e := validTestEvent()
	e.Title = "  picnic  "
	e.Location = " the park "
	e.Tags = []string{" music ", "music", "", "food", "  "}

	e.Sanitize()

	if e.Title != "picnic" {
		t.Errorf("title = %q, want trimmed", e.Title)
	}
	if e.Location != "the park" {
		t.Errorf("location = %q, want trimmed", e.Location)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "music" || e.Tags[1] != "food" {
		t.Errorf("tags = %v, want [music food]", e.Tags)
	}
}
