package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/4lejanddr0/communityevents/internal/middleware"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/4lejanddr0/communityevents/internal/notify"
	"github.com/4lejanddr0/communityevents/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func eventIDParam(c *gin.Context) string {
	id := strings.TrimSpace(c.Param("id"))
	return strings.Trim(id, "\"'")
}

func CreateEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.CallerClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		id, err := es.CreateEvent(c.Request.Context(), &event, claims.UID())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{"id": id}, "Event created successfully"))
	}
}

// UpdateEvent replaces the stored event wholesale; clients must send the
// complete document, omitted fields are wiped.
func UpdateEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.CallerClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		id := eventIDParam(c)
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
			return
		}

		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		event.ID = id

		if err := es.UpdateEvent(c.Request.Context(), &event, claims.UID()); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event updated successfully"))
	}
}

func DeleteEvent(es *services.EventsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.CallerClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		id := eventIDParam(c)
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
			return
		}

		if err := es.DeleteEvent(c.Request.Context(), id, claims.UID()); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event deleted successfully"))
	}
}

// BrowseEvents returns the four home-screen lists in one call. Identity is
// optional; anonymous callers get empty "mine" lists.
func BrowseEvents(bs *services.BrowseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := uuid.Nil
		if claims := middleware.CallerClaims(c); claims != nil {
			uid = claims.UID()
		}

		lists, err := bs.LoadLists(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(lists, ""))
	}
}

// EventDetail is everything the detail screen needs for one event in a
// single response.
type EventDetail struct {
	Event         *models.Event     `json:"event"`
	IsOwner       bool              `json:"is_owner"`
	Attendees     int64             `json:"attendees"`
	Attending     bool              `json:"attending"`
	Comments      []*models.Comment `json:"comments"`
	AverageRating *float64          `json:"average_rating,omitempty"`
	RatingsCount  int               `json:"ratings_count"`
	Banners       notify.Banners    `json:"banners"`
}

func GetEventDetail(es *services.EventsService, as *services.AttendanceService, rs *services.ReviewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := eventIDParam(c)
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
			return
		}

		uid := uuid.Nil
		if claims := middleware.CallerClaims(c); claims != nil {
			uid = claims.UID()
		}

		ctx := c.Request.Context()

		event, err := es.GetEvent(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if !event.Public && event.CreatorID != uid {
			// Private events are discoverable by their creator only.
			respondError(c, apperr.New(apperr.NotFound, "event not found"))
			return
		}

		attendees, err := as.Count(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		attending, err := as.IsAttending(ctx, id, uid)
		if err != nil {
			respondError(c, err)
			return
		}
		comments, err := rs.ListComments(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		avg, count, err := rs.Average(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}

		detail := EventDetail{
			Event:        event,
			IsOwner:      uid != uuid.Nil && event.CreatorID == uid,
			Attendees:    attendees,
			Attending:    attending,
			Comments:     comments,
			RatingsCount: count,
			Banners:      notify.ForEvent(event, attending, time.Now()),
		}
		if count > 0 {
			detail.AverageRating = &avg
		}

		c.JSON(http.StatusOK, models.SuccessResponse(detail, ""))
	}
}
