package handlers

import (
	"net/http"

	"github.com/4lejanddr0/communityevents/internal/middleware"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/4lejanddr0/communityevents/internal/services"
	"github.com/gin-gonic/gin"
)

// attendanceState is returned after every toggle so the client can repaint
// without a second round-trip. The re-read still races under concurrent
// toggles by the same identity; last write wins.
type attendanceState struct {
	Attending bool  `json:"attending"`
	Attendees int64 `json:"attendees"`
}

func JoinEvent(as *services.AttendanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.CallerClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		id := eventIDParam(c)
		if err := as.Join(c.Request.Context(), id, claims.UID()); err != nil {
			respondError(c, err)
			return
		}

		state, err := loadAttendanceState(c, as, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(state, "You are attending"))
	}
}

func LeaveEvent(as *services.AttendanceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middleware.CallerClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		id := eventIDParam(c)
		if err := as.Leave(c.Request.Context(), id, claims.UID()); err != nil {
			respondError(c, err)
			return
		}

		state, err := loadAttendanceState(c, as, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(state, "You are no longer attending"))
	}
}

func loadAttendanceState(c *gin.Context, as *services.AttendanceService, eventID string) (*attendanceState, error) {
	claims := middleware.CallerClaims(c)

	count, err := as.Count(c.Request.Context(), eventID)
	if err != nil {
		return nil, err
	}
	attending, err := as.IsAttending(c.Request.Context(), eventID, claims.UID())
	if err != nil {
		return nil, err
	}

	return &attendanceState{Attending: attending, Attendees: count}, nil
}
