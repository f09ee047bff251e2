// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"journey360/internal/ai"
	"journey360/internal/modules/itinerary"
	"journey360/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps module errors to HTTP responses. The capacity check
// runs before the exhaustion check since a capacity error wraps exhaustion.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest), errors.Is(err, itinerary.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound), errors.Is(err, itinerary.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ai.ErrAtCapacity):
		writeError(c, http.StatusServiceUnavailable, "AI is currently at capacity. Please try again in 30 seconds.")
	case errors.Is(err, ai.ErrExhausted):
		writeError(c, http.StatusBadGateway, "itinerary generation failed, please retry")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
