// README: Conversational AI handler (chat, safety assessment, post-trip summary).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"journey360/internal/ai"
	"journey360/internal/http/middleware"
	"journey360/internal/modules/trip"
)

// AssistantService is the conversational surface of the AI layer. All
// methods degrade internally and never fail the request.
type AssistantService interface {
	Chat(ctx context.Context, message string, trip *ai.TripParams) string
	AssessSafety(ctx context.Context, location string) ai.SafetyReport
	TripSummary(ctx context.Context, trip ai.TripParams) string
}

type AssistantHandler struct {
	assistant AssistantService
	trips     *trip.Service
}

func NewAssistantHandler(assistant AssistantService, trips *trip.Service) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, trips: trips}
}

type chatReq struct {
	Message string `json:"message"`
	TripID  string `json:"tripId"`
}

// Chat handles POST /api/ai/chat. When a trip is referenced it grounds the
// reply in that trip's parameters.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	var params *ai.TripParams
	if req.TripID != "" {
		if t, err := h.trips.Get(ctx, req.TripID, middleware.CallerUID(c)); err == nil {
			params = &ai.TripParams{
				Destination: t.Destination,
				Days:        t.Days,
				Budget:      t.Budget,
				BudgetLevel: t.BudgetLevel,
				Interests:   t.Interests,
				Pace:        t.TravelPace,
			}
		}
	}

	reply := h.assistant.Chat(ctx, req.Message, params)
	writeJSON(c, http.StatusOK, gin.H{"reply": reply})
}

type safetyReq struct {
	Location string `json:"location"`
}

// AssessSafety handles POST /api/ai/safety/assess.
func (h *AssistantHandler) AssessSafety(c *gin.Context) {
	var req safetyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		writeError(c, http.StatusBadRequest, "missing location")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	writeJSON(c, http.StatusOK, h.assistant.AssessSafety(ctx, req.Location))
}

type summaryReq struct {
	TripID string `json:"tripId"`
}

// PostTripSummary handles POST /api/ai/post-trip/summary.
func (h *AssistantHandler) PostTripSummary(c *gin.Context) {
	var req summaryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.TripID) == "" {
		writeError(c, http.StatusBadRequest, "missing tripId")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	t, err := h.trips.Get(ctx, req.TripID, middleware.CallerUID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	summary := h.assistant.TripSummary(ctx, ai.TripParams{
		Destination: t.Destination,
		Days:        t.Days,
		Budget:      t.Budget,
		Interests:   t.Interests,
	})
	writeJSON(c, http.StatusOK, gin.H{"summary": summary})
}
