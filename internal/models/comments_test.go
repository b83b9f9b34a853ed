package models

import (
	"testing"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/google/uuid"
)

func TestValidateComment(t *testing.T) {
	base := func() *Comment {
		return &Comment{
			EventID: "abc123",
			UserID:  uuid.New(),
			Rating:  3,
			Text:    "solid event",
		}
	}

	if err := base().ValidateComment(); err != nil {
		t.Fatalf("valid comment rejected: %v", err)
	}

	for _, rating := range []int{0, -1, 6} {
		c := base()
		c.Rating = rating
		if err := c.ValidateComment(); !apperr.IsKind(err, apperr.InvalidArgument) {
			t.Errorf("rating %d should be InvalidArgument, got %v", rating, err)
		}
	}

	anon := base()
	anon.UserID = uuid.Nil
	if err := anon.ValidateComment(); !apperr.IsKind(err, apperr.Unauthenticated) {
		t.Errorf("nil user should be Unauthenticated, got %v", err)
	}

	orphan := base()
	orphan.EventID = ""
	if err := orphan.ValidateComment(); !apperr.IsKind(err, apperr.InvalidArgument) {
		t.Errorf("empty event id should be InvalidArgument, got %v", err)
	}
}
