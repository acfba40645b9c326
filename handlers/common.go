package handlers

import (
	"errors"
	"net/http"
	"server/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ListResponse is the pagination envelope for every paginated listing.
type ListResponse struct {
	Items      interface{}       `json:"items"`
	Pagination models.Pagination `json:"pagination"`
}

var OKResponse = gin.H{"error": ""}

// abortWithError translates the models error kinds to status codes:
// NotFound -> 404, Validation -> 400, anything else is a storage failure.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
