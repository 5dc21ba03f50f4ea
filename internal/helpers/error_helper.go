package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tickify/gateway/internal/upstream"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondUpstreamError maps the upstream sentinel errors onto gateway status
// codes. Detail-style endpoints use this; list-style endpoints degrade to an
// empty payload plus a notice instead of an error status.
func RespondUpstreamError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, upstream.ErrUnauthorized):
		RespondWithError(c, http.StatusUnauthorized, "Your session is no longer valid. Please sign in again.")
	case errors.Is(err, upstream.ErrUnavailable):
		RespondWithError(c, http.StatusBadGateway, "The ticketing service is temporarily unavailable.")
	default:
		RespondWithError(c, http.StatusInternalServerError, "Unexpected error talking to the ticketing service.")
	}
}
