package handlers

import (
	"github.com/4lejanddr0/communityevents/internal/apperr"
	"github.com/4lejanddr0/communityevents/internal/models"
	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the HTTP response for its
// kind. Internal errors are also pushed onto the gin error list so the
// logging middleware records the real cause without leaking it.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		_ = c.Error(err)
	}
	c.JSON(kind.HTTPStatus(), models.ErrorResponse(apperr.PublicMessage(err)))
}
