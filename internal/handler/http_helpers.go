package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portfoliocms/internal/content"
	"github.com/portfoliocms/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func pageIDParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}

// respondPageError maps page service errors onto JSON responses.
func respondPageError(c *gin.Context, err error, pageID string) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Please fix the highlighted fields",
			"fields": verr.Fields(),
		})
	case errors.Is(err, service.ErrPageNotFound):
		respondError(c, http.StatusNotFound, "Page not found")
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, http.StatusConflict, content.MsgSlugTaken)
	case errors.Is(err, service.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, "Please sign in again")
	default:
		c.Error(err)
		log.Error().Err(err).Str("page_id", pageID).Msg("page operation failed")
		respondError(c, http.StatusInternalServerError, "Something went wrong while saving. Please try again.")
	}
}
