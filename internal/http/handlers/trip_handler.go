// README: Trip CRUD handler.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journey360/internal/http/middleware"
	"journey360/internal/modules/trip"
)

type TripHandler struct {
	trips *trip.Service
}

func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

type createTripReq struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Days        int      `json:"days"`
	Budget      float64  `json:"budget"`
	BudgetLevel string   `json:"budget_level"`
	Interests   []string `json:"interests"`
	TravelPace  string   `json:"travel_pace"`
}

// Create handles POST /api/trip/create.
func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		writeError(c, http.StatusBadRequest, "missing destination")
		return
	}

	t, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		UserID:      middleware.CallerUID(c),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        req.Days,
		Budget:      req.Budget,
		BudgetLevel: req.BudgetLevel,
		Interests:   req.Interests,
		TravelPace:  req.TravelPace,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

// List handles GET /api/trips.
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if trips == nil {
		trips = []trip.Trip{}
	}
	writeJSON(c, http.StatusOK, trips)
}

// Get handles GET /api/trip/:id.
func (h *TripHandler) Get(c *gin.Context) {
	t, err := h.trips.Get(c.Request.Context(), c.Param("id"), middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}
