package services

import (
	"context"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/google/uuid"
)

// AttendanceService manages the per-event membership set. Join and Leave are
// both idempotent; the attendee count is derived from the set on every read.
type AttendanceService struct {
	attendanceRepo models.AttendanceRepo
	eventsRepo     models.EventsRepo
	now            func() time.Time
}

func NewAttendanceService(attendanceRepo models.AttendanceRepo, eventsRepo models.EventsRepo) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		eventsRepo:     eventsRepo,
		now:            time.Now,
	}
}

// Join upserts the membership record. Re-joining refreshes joined_at; that
// is deliberate, not an accident of the upsert.
func (as *AttendanceService) Join(ctx context.Context, eventID string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.New(apperr.Unauthenticated, "sign in to attend an event")
	}
	if eventID == "" {
		return apperr.New(apperr.InvalidArgument, "event id is required")
	}

	if _, err := as.eventsRepo.GetEventByID(ctx, eventID); err != nil {
		return err
	}

	return as.attendanceRepo.UpsertAttendance(ctx, eventID, userID, as.now())
}

// Leave removes the membership record. Leaving an event never joined is not
// an error.
func (as *AttendanceService) Leave(ctx context.Context, eventID string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.New(apperr.Unauthenticated, "sign in to manage attendance")
	}
	if eventID == "" {
		return apperr.New(apperr.InvalidArgument, "event id is required")
	}

	return as.attendanceRepo.DeleteAttendance(ctx, eventID, userID)
}

func (as *AttendanceService) Count(ctx context.Context, eventID string) (int64, error) {
	if eventID == "" {
		return 0, apperr.New(apperr.InvalidArgument, "event id is required")
	}
	return as.attendanceRepo.CountAttendance(ctx, eventID)
}

// IsAttending reports membership for the given user. An anonymous caller is
// never attending.
func (as *AttendanceService) IsAttending(ctx context.Context, eventID string, userID uuid.UUID) (bool, error) {
	if eventID == "" {
		return false, apperr.New(apperr.InvalidArgument, "event id is required")
	}
	if userID == uuid.Nil {
		return false, nil
	}
	return as.attendanceRepo.IsAttending(ctx, eventID, userID)
}
