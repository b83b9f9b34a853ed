package handlers

import (
	"net/http"

	"github.com/4lejanddr0/communityevents/internal/middleware"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/4lejanddr0/communityevents/internal/services"
	"github.com/gin-gonic/gin"
)

type addCommentRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating" binding:"required"`
}

func ListComments(rs *services.ReviewsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := eventIDParam(c)
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("event ID is required"))
			return
		}

		comments, err := rs.ListComments(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(comments, ""))
	}
}

func AddComment(rs *services.ReviewsService) gin.HandlerFunc {
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

		var req addCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		reviewer := services.Reviewer{
			ID:          claims.UID(),
			DisplayName: claims.DisplayName(),
		}

		comment, err := rs.AddComment(c.Request.Context(), id, reviewer, req.Text, req.Rating)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(comment, "Review added"))
	}
}
