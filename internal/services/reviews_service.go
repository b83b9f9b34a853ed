package services

import (
	"context"
	"strings"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/google/uuid"
)

// Reviewer is the identity snapshot taken at write time. The name is
// denormalized onto the comment and never re-synced if the author later
// renames.
type Reviewer struct {
	ID          uuid.UUID
	DisplayName string
}

// ReviewsService owns the per-event comment list and its rating aggregate.
// The eligibility gate and the rating bounds live here, not in a calling UI
// layer, so they cannot be bypassed.
type ReviewsService struct {
	commentsRepo   models.CommentsRepo
	attendanceRepo models.AttendanceRepo
	eventsRepo     models.EventsRepo
	now            func() time.Time
}

func NewReviewsService(commentsRepo models.CommentsRepo, attendanceRepo models.AttendanceRepo, eventsRepo models.EventsRepo) *ReviewsService {
	return &ReviewsService{
		commentsRepo:   commentsRepo,
		attendanceRepo: attendanceRepo,
		eventsRepo:     eventsRepo,
		now:            time.Now,
	}
}

func (rs *ReviewsService) ListComments(ctx context.Context, eventID string) ([]*models.Comment, error) {
	if eventID == "" {
		return nil, apperr.New(apperr.InvalidArgument, "event id is required")
	}
	return rs.commentsRepo.ListCommentsByEvent(ctx, eventID)
}

// AddComment appends a review. A comment may be added only once the event
// has ended and only by someone in the event's attendance set.
func (rs *ReviewsService) AddComment(ctx context.Context, eventID string, reviewer Reviewer, text string, rating int) (*models.Comment, error) {
	if reviewer.ID == uuid.Nil {
		return nil, apperr.New(apperr.Unauthenticated, "sign in to leave a review")
	}

	comment := &models.Comment{
		EventID:  eventID,
		UserID:   reviewer.ID,
		UserName: reviewer.DisplayName,
		Rating:   rating,
		Text:     strings.TrimSpace(text),
	}
	if comment.UserName == "" {
		comment.UserName = "Anonymous"
	}
	if err := comment.ValidateComment(); err != nil {
		return nil, err
	}

	event, err := rs.eventsRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.EndTime.Before(rs.now()) {
		return nil, apperr.New(apperr.Unauthorized, "reviews open once the event has ended")
	}

	attending, err := rs.attendanceRepo.IsAttending(ctx, eventID, reviewer.ID)
	if err != nil {
		return nil, err
	}
	if !attending {
		return nil, apperr.New(apperr.Unauthorized, "only attendees can review this event")
	}

	comment.CreatedAt = rs.now()
	id, err := rs.commentsRepo.InsertComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id
	return comment, nil
}

// Average recomputes the arithmetic mean from the full comment set on every
// read. count == 0 is the no-rating sentinel; avg is meaningless then and
// callers must not surface it.
func (rs *ReviewsService) Average(ctx context.Context, eventID string) (avg float64, count int, err error) {
	comments, err := rs.ListComments(ctx, eventID)
	if err != nil {
		return 0, 0, err
	}
	if len(comments) == 0 {
		return 0, 0, nil
	}

	sum := 0
	for _, c := range comments {
		sum += c.Rating
	}
	return float64(sum) / float64(len(comments)), len(comments), nil
}
