package services

import (
	"context"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/4lejanddr0/communityevents/internal/helpers"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
)

// EventsService owns the event catalog: create, read, update and delete with
// ownership enforcement. Updates are full-document replaces.
type EventsService struct {
	eventsRepo     models.EventsRepo
	attendanceRepo models.AttendanceRepo
	commentsRepo   models.CommentsRepo
	uploadImages   func(ctx context.Context, images []string) ([]string, []string, error)
	deleteImages   func(ctx context.Context, publicIDs []string)
	now            func() time.Time
}

func NewEventsService(eventsRepo models.EventsRepo, attendanceRepo models.AttendanceRepo, commentsRepo models.CommentsRepo, cld *cloudinary.Cloudinary) *EventsService {
	return &EventsService{
		eventsRepo:     eventsRepo,
		attendanceRepo: attendanceRepo,
		commentsRepo:   commentsRepo,
		uploadImages: func(ctx context.Context, images []string) ([]string, []string, error) {
			return helpers.UploadImages(ctx, cld, images, helpers.EventsFolder)
		},
		deleteImages: func(ctx context.Context, publicIDs []string) {
			helpers.DeleteImages(ctx, cld, publicIDs)
		},
		now: time.Now,
	}
}

func (es *EventsService) CreateEvent(ctx context.Context, event *models.Event, creatorID uuid.UUID) (string, error) {
	if creatorID == uuid.Nil {
		return "", apperr.New(apperr.Unauthenticated, "sign in to create an event")
	}

	event.Sanitize()
	if err := event.ValidateEvent(); err != nil {
		return "", err
	}

	var uploadedPublicIDs []string
	if len(event.Images) > 0 {
		urls, publicIDs, err := es.uploadImages(ctx, event.Images)
		if err != nil {
			return "", apperr.Wrap(apperr.Internal, "failed to upload event images", err)
		}
		event.Images = urls
		uploadedPublicIDs = publicIDs
	}

	now := es.now()
	event.ID = ""
	event.CreatorID = creatorID
	event.CreatedAt = now
	event.UpdatedAt = now

	id, err := es.eventsRepo.CreateEvent(ctx, event)
	if err != nil {
		// The insert failed after the uploads landed; destroy them so the
		// assets are not left unreferenced.
		if len(uploadedPublicIDs) > 0 {
			es.deleteImages(ctx, uploadedPublicIDs)
		}
		return "", err
	}
	event.ID = id
	return id, nil
}

func (es *EventsService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, apperr.New(apperr.InvalidArgument, "event id is required")
	}
	return es.eventsRepo.GetEventByID(ctx, id)
}

// UpdateEvent replaces the stored document with the given event. Omitted
// fields are wiped rather than merged; createdAt and creatorId always carry
// over from the stored record.
func (es *EventsService) UpdateEvent(ctx context.Context, event *models.Event, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return apperr.New(apperr.Unauthenticated, "sign in to update an event")
	}
	if event.ID == "" {
		return apperr.New(apperr.InvalidArgument, "event id is required")
	}

	existing, err := es.eventsRepo.GetEventByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if existing.CreatorID != callerID {
		return apperr.New(apperr.Unauthorized, "only the creator can update this event")
	}

	event.Sanitize()
	if err := event.ValidateEvent(); err != nil {
		return err
	}

	event.CreatorID = existing.CreatorID
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = es.now()

	return es.eventsRepo.ReplaceEvent(ctx, event)
}

// DeleteEvent removes the event and cascades to its attendance records and
// comments so no orphaned sub-documents are left behind.
func (es *EventsService) DeleteEvent(ctx context.Context, id string, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return apperr.New(apperr.Unauthenticated, "sign in to delete an event")
	}
	if id == "" {
		return apperr.New(apperr.InvalidArgument, "event id is required")
	}

	existing, err := es.eventsRepo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatorID != callerID {
		return apperr.New(apperr.Unauthorized, "only the creator can delete this event")
	}

	if err := es.eventsRepo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	if err := es.attendanceRepo.DeleteAttendanceByEvent(ctx, id); err != nil {
		return err
	}
	return es.commentsRepo.DeleteCommentsByEvent(ctx, id)
}
