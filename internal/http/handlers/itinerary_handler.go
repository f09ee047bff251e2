// README: Itinerary generation, retrieval, regeneration, and AR-nearby handler.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"journey360/internal/http/middleware"
	"journey360/internal/modules/itinerary"
)

type ItineraryHandler struct {
	itineraries *itinerary.Service
}

func NewItineraryHandler(itineraries *itinerary.Service) *ItineraryHandler {
	return &ItineraryHandler{itineraries: itineraries}
}

// Generate handles POST /api/ai/itinerary/generate?trip_id=.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	tripID := strings.TrimSpace(c.Query("trip_id"))
	if tripID == "" {
		writeError(c, http.StatusBadRequest, "missing trip_id")
		return
	}

	it, err := h.itineraries.Generate(c.Request.Context(), tripID, middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, it)
}

// GetByTrip handles GET /api/trip/:id/itinerary.
func (h *ItineraryHandler) GetByTrip(c *gin.Context) {
	it, err := h.itineraries.GetByTrip(c.Request.Context(), c.Param("id"), middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

type regenerateReq struct {
	TripID      string         `json:"tripId"`
	Instruction string         `json:"instruction"`
	Constraints map[string]any `json:"constraints"`
}

// Regenerate handles POST /api/ai/itinerary/regenerate.
func (h *ItineraryHandler) Regenerate(c *gin.Context) {
	var req regenerateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.TripID) == "" || strings.TrimSpace(req.Instruction) == "" {
		writeError(c, http.StatusBadRequest, "missing tripId or instruction")
		return
	}

	it, err := h.itineraries.Regenerate(c.Request.Context(), itinerary.RegenerateCommand{
		TripID:      req.TripID,
		UserID:      middleware.CallerUID(c),
		Instruction: req.Instruction,
		Constraints: req.Constraints,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, it)
}

// ARNearby handles GET /api/ai/itinerary/ar-nearby?trip_id=&lat=&lng=&radius=.
func (h *ItineraryHandler) ARNearby(c *gin.Context) {
	tripID := strings.TrimSpace(c.Query("trip_id"))
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if tripID == "" || latErr != nil || lngErr != nil {
		writeError(c, http.StatusBadRequest, "missing trip_id, lat, or lng")
		return
	}
	radius, _ := strconv.ParseFloat(c.Query("radius"), 64)

	places, err := h.itineraries.NearbyPlaces(c.Request.Context(), tripID, middleware.CallerUID(c), lat, lng, radius)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if places == nil {
		places = []itinerary.NearbyPlace{}
	}
	writeJSON(c, http.StatusOK, gin.H{"places": places})
}
