// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"journey360/internal/ai"
	"journey360/internal/config"
	httptransport "journey360/internal/http"
	"journey360/internal/infra"
	"journey360/internal/modules/itinerary"
	"journey360/internal/modules/trip"
	"journey360/internal/travel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("J360_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	cache := travel.NewCache(redisClient, 6*time.Hour)

	placesSvc, err := travel.NewPlacesService(cfg.Travel.MapsKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}
	hotelSvc := travel.NewHotelService(cfg.Travel.SerpAPIKey, placesSvc)
	restaurantSvc := travel.NewRestaurantService(cfg.Travel.SerpAPIKey, cache)
	weatherSvc := travel.NewWeatherService(cfg.Travel.OpenWeatherKey, cache)

	gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer gemini.Close()

	providers := []ai.Provider{
		ai.NewOpenRouterProvider(cfg.AI.OpenRouterKey, "meta-llama/llama-3.3-70b-instruct:free"),
		ai.NewOpenRouterProvider(cfg.AI.OpenRouterKey, "openai/gpt-4o-mini"),
		ai.NewOpenRouterProvider(cfg.AI.OpenRouterKey, "google/gemini-2.0-flash-001"),
		gemini,
	}
	caller := ai.NewCaller(providers, cfg.AI.MockMode)
	assistant := ai.NewAssistant(gemini)

	tripSvc := trip.NewService(trip.NewStore(dbPool))
	itinerarySvc := itinerary.NewService(
		tripSvc,
		itinerary.NewStore(dbPool),
		placesSvc,
		hotelSvc,
		restaurantSvc,
		weatherSvc,
		caller,
		cfg.Itinerary,
	)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Verifier:    verifier,
		Trips:       tripSvc,
		Itineraries: itinerarySvc,
		Assistant:   assistant,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("journey360 api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	// Shutdown drains in-flight requests; wait for it before exiting.
	stop()
	<-shutdownDone
}
