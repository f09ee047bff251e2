// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"journey360/internal/http/handlers"
	"journey360/internal/http/middleware"
	"journey360/internal/infra"
	"journey360/internal/modules/itinerary"
	"journey360/internal/modules/trip"
)

type RouterDeps struct {
	Verifier    infra.TokenVerifier
	Trips       *trip.Service
	Itineraries *itinerary.Service
	Assistant   handlers.AssistantService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	tripHandler := handlers.NewTripHandler(deps.Trips)
	api.POST("/trip/create", tripHandler.Create)
	api.GET("/trips", tripHandler.List)
	api.GET("/trip/:id", tripHandler.Get)

	itineraryHandler := handlers.NewItineraryHandler(deps.Itineraries)
	api.POST("/ai/itinerary/generate", itineraryHandler.Generate)
	api.GET("/trip/:id/itinerary", itineraryHandler.GetByTrip)
	api.POST("/ai/itinerary/regenerate", itineraryHandler.Regenerate)
	api.GET("/ai/itinerary/ar-nearby", itineraryHandler.ARNearby)

	assistantHandler := handlers.NewAssistantHandler(deps.Assistant, deps.Trips)
	api.POST("/ai/chat", assistantHandler.Chat)
	api.POST("/ai/safety/assess", assistantHandler.AssessSafety)
	api.POST("/ai/post-trip/summary", assistantHandler.PostTripSummary)

	return r
}
