// README: Route-level tests for auth, validation, and error mapping.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v3"

	"journey360/internal/ai"
	"journey360/internal/config"
	apihttp "journey360/internal/http"
	"journey360/internal/infra"
	"journey360/internal/modules/itinerary"
	"journey360/internal/modules/trip"
	"journey360/internal/travel"
)

type stubVerifier struct {
	token *infra.FirebaseToken
	err   error
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.FirebaseToken, error) {
	return s.token, s.err
}

type stubTripSource struct {
	trip *trip.Trip
	err  error
}

func (s *stubTripSource) Get(_ context.Context, _, _ string) (*trip.Trip, error) {
	return s.trip, s.err
}

type stubPlaces struct{}

func (stubPlaces) Coordinates(_ context.Context, _ string) (float64, float64, error) {
	return 22.57, 88.36, nil
}

func (stubPlaces) Search(_ context.Context, _, _ string) []travel.PlaceCandidate { return nil }

type stubHotels struct{}

func (stubHotels) Search(_ context.Context, _, _, _ string) []travel.HotelCandidate { return nil }

type stubRestaurants struct{}

func (stubRestaurants) Search(_ context.Context, _ string) []travel.RestaurantCandidate { return nil }

type stubWeather struct{}

func (stubWeather) Current(_ context.Context, _ string) travel.WeatherSnapshot {
	return travel.WeatherSnapshot{Description: "clear sky", TempC: 25}
}

type stubGen struct {
	response map[string]any
	err      error
}

func (s *stubGen) Generate(_ context.Context, _ string, _ ai.TripParams, _ ai.MockContext) (map[string]any, error) {
	return s.response, s.err
}

type stubAssistant struct{}

func (stubAssistant) Chat(_ context.Context, message string, _ *ai.TripParams) string {
	return "echo: " + message
}

func (stubAssistant) AssessSafety(_ context.Context, location string) ai.SafetyReport {
	return ai.SafetyReport{Level: "Low Risk", Advice: "Standard caution in " + location + "."}
}

func (stubAssistant) TripSummary(_ context.Context, t ai.TripParams) string {
	return "What a trip to " + t.Destination + "!"
}

func testItineraryConfig() config.ItineraryConfig {
	return config.ItineraryConfig{
		CurrencySymbol: "₹",
		CurrencyCode:   "INR",
		USDRate:        83,
		FuzzyDupMinLen: 12,
	}
}

type routerOpts struct {
	verifier infra.TokenVerifier
	gen      *stubGen
	trips    *stubTripSource
}

func buildRouter(t *testing.T, opts routerOpts) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	// Inserts are incidental to these route tests.
	args := make([]any, 16)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectExec(`INSERT INTO itineraries`).WithArgs(args...).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tripMock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(tripMock.Close)
	tripArgs := make([]any, 12)
	for i := range tripArgs {
		tripArgs[i] = pgxmock.AnyArg()
	}
	tripMock.ExpectExec(`INSERT INTO trips`).WithArgs(tripArgs...).WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if opts.verifier == nil {
		opts.verifier = &stubVerifier{token: &infra.FirebaseToken{UID: "user-1"}}
	}
	if opts.gen == nil {
		opts.gen = &stubGen{response: map[string]any{"days": []any{}}}
	}
	if opts.trips == nil {
		opts.trips = &stubTripSource{trip: &trip.Trip{
			ID: "trip-1", UserID: "user-1", Destination: "Kolkata", Days: 2,
		}}
	}

	tripSvc := trip.NewService(trip.NewStore(tripMock))
	itinerarySvc := itinerary.NewService(
		opts.trips,
		itinerary.NewStore(mock),
		stubPlaces{}, stubHotels{}, stubRestaurants{}, stubWeather{},
		opts.gen,
		testItineraryConfig(),
	)

	return apihttp.NewRouter(apihttp.RouterDeps{
		Verifier:    opts.verifier,
		Trips:       tripSvc,
		Itineraries: itinerarySvc,
		Assistant:   stubAssistant{},
	})
}

func doRequest(r *gin.Engine, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer sometoken")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_Unauthenticated(t *testing.T) {
	r := buildRouter(t, routerOpts{verifier: &stubVerifier{err: fmt.Errorf("no token")}})
	w := doRequest(r, http.MethodGet, "/health", nil, false)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAPI_RequiresAuth(t *testing.T) {
	r := buildRouter(t, routerOpts{verifier: &stubVerifier{err: fmt.Errorf("no token")}})
	for _, path := range []string{"/api/trips", "/api/trip/abc", "/api/ai/itinerary/ar-nearby"} {
		if w := doRequest(r, http.MethodGet, path, nil, true); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", path, w.Code)
		}
	}
}

func TestCreateTrip(t *testing.T) {
	r := buildRouter(t, routerOpts{})

	w := doRequest(r, http.MethodPost, "/api/trip/create", map[string]any{
		"destination": "Kolkatta",
		"start_date":  "2026-09-10",
		"end_date":    "2026-09-12",
		"budget":      40000,
	}, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var got trip.Trip
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Destination != "Kolkata" {
		t.Errorf("Destination = %q, want sanitized Kolkata", got.Destination)
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID = %q, want caller identity", got.UserID)
	}
	if got.Days != 3 {
		t.Errorf("Days = %d, want 3", got.Days)
	}
}

func TestCreateTrip_MissingDestination(t *testing.T) {
	r := buildRouter(t, routerOpts{})
	w := doRequest(r, http.MethodPost, "/api/trip/create", map[string]any{"budget": 1000}, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGenerateItinerary(t *testing.T) {
	r := buildRouter(t, routerOpts{gen: &stubGen{response: map[string]any{
		"days": []any{
			map[string]any{"dayNumber": 1.0, "places": []any{
				map[string]any{"name": "Victoria Memorial", "category": "Attraction", "estimatedCost": 200},
			}},
		},
		"safetyAdvisory": "All clear.",
		ai.UsedModelKey:  "openai/gpt-4o-mini",
	}}})

	w := doRequest(r, http.MethodPost, "/api/ai/itinerary/generate?trip_id=trip-1", nil, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Victoria Memorial") || !strings.Contains(body, "openai/gpt-4o-mini") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestGenerateItinerary_MissingTripID(t *testing.T) {
	r := buildRouter(t, routerOpts{})
	w := doRequest(r, http.MethodPost, "/api/ai/itinerary/generate", nil, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGenerateItinerary_CapacityMapsTo503(t *testing.T) {
	r := buildRouter(t, routerOpts{gen: &stubGen{
		err: fmt.Errorf("%w: %w", ai.ErrAtCapacity, ai.ErrExhausted),
	}})

	w := doRequest(r, http.MethodPost, "/api/ai/itinerary/generate?trip_id=trip-1", nil, true)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "at capacity") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGenerateItinerary_ExhaustionMapsTo502(t *testing.T) {
	r := buildRouter(t, routerOpts{gen: &stubGen{err: ai.ErrExhausted}})
	w := doRequest(r, http.MethodPost, "/api/ai/itinerary/generate?trip_id=trip-1", nil, true)
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}

func TestGenerateItinerary_UnknownTripMapsTo404(t *testing.T) {
	r := buildRouter(t, routerOpts{trips: &stubTripSource{err: trip.ErrNotFound}})
	w := doRequest(r, http.MethodPost, "/api/ai/itinerary/generate?trip_id=missing", nil, true)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRegenerate_Validation(t *testing.T) {
	r := buildRouter(t, routerOpts{})
	w := doRequest(r, http.MethodPost, "/api/ai/itinerary/regenerate", map[string]any{"tripId": "trip-1"}, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing instruction: expected 400, got %d", w.Code)
	}
}

func TestARNearby_Validation(t *testing.T) {
	r := buildRouter(t, routerOpts{})
	w := doRequest(r, http.MethodGet, "/api/ai/itinerary/ar-nearby?trip_id=trip-1&lat=abc&lng=2.3", nil, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad lat: expected 400, got %d", w.Code)
	}
}

func TestAssistantChat(t *testing.T) {
	r := buildRouter(t, routerOpts{})

	w := doRequest(r, http.MethodPost, "/api/ai/chat", map[string]any{"message": "what should I pack?"}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "echo: what should I pack?") {
		t.Errorf("body = %s", w.Body.String())
	}

	w = doRequest(r, http.MethodPost, "/api/ai/chat", map[string]any{}, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing message: expected 400, got %d", w.Code)
	}
}

func TestAssistantSafety(t *testing.T) {
	r := buildRouter(t, routerOpts{})

	w := doRequest(r, http.MethodPost, "/api/ai/safety/assess", map[string]any{"location": "Kolkata"}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var report ai.SafetyReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.Level != "Low Risk" {
		t.Errorf("level = %q", report.Level)
	}
}
