// README: Itinerary orchestration: context gathering, AI generation, post-processing.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"journey360/internal/ai"
	"journey360/internal/config"
	"journey360/internal/modules/trip"
	"journey360/internal/travel"
)

var ErrBadRequest = errors.New("bad request")

const (
	maxPromptPlaces = 50
	maxPromptHotels = 10
	maxPromptDining = 15
	dateLayout      = "2006-01-02"
)

// TripSource resolves trips with ownership enforced.
type TripSource interface {
	Get(ctx context.Context, id, userID string) (*trip.Trip, error)
}

// PlaceSearcher provides geocoding and interest-based place search.
type PlaceSearcher interface {
	Coordinates(ctx context.Context, placeName string) (float64, float64, error)
	Search(ctx context.Context, destination, interest string) []travel.PlaceCandidate
}

type HotelSearcher interface {
	Search(ctx context.Context, location, checkIn, checkOut string) []travel.HotelCandidate
}

type RestaurantSearcher interface {
	Search(ctx context.Context, location string) []travel.RestaurantCandidate
}

type WeatherSource interface {
	Current(ctx context.Context, city string) travel.WeatherSnapshot
}

// Generator is the AI fallback caller.
type Generator interface {
	Generate(ctx context.Context, prompt string, params ai.TripParams, mock ai.MockContext) (map[string]any, error)
}

// Service orchestrates itinerary generation and regeneration for trips.
type Service struct {
	trips       TripSource
	store       *Store
	places      PlaceSearcher
	hotels      HotelSearcher
	restaurants RestaurantSearcher
	weather     WeatherSource
	gen         Generator
	cfg         config.ItineraryConfig

	// locks serializes generation per trip; concurrent requests for the same
	// trip would double-spend provider quota and race on the insert.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewService(
	trips TripSource,
	store *Store,
	places PlaceSearcher,
	hotels HotelSearcher,
	restaurants RestaurantSearcher,
	weather WeatherSource,
	gen Generator,
	cfg config.ItineraryConfig,
) *Service {
	return &Service{
		trips:       trips,
		store:       store,
		places:      places,
		hotels:      hotels,
		restaurants: restaurants,
		weather:     weather,
		gen:         gen,
		cfg:         cfg,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *Service) tripLock(tripID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	if mu, ok := s.locks[tripID]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	s.locks[tripID] = mu
	return mu
}

// Generate builds a fresh itinerary for the trip: gathers place, hotel,
// restaurant, and weather context, prompts the AI ladder, then normalizes
// the response (duplicate filtering, day backfill, cost recomputation,
// hotel authority override) before persisting.
func (s *Service) Generate(ctx context.Context, tripID, userID string) (*Itinerary, error) {
	if tripID == "" {
		return nil, ErrBadRequest
	}

	mu := s.tripLock(tripID)
	mu.Lock()
	defer mu.Unlock()

	t, err := s.trips.Get(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	destination := trip.SanitizeDestination(t.Destination)
	interests := forceSearchInterests(t.Interests)

	// Candidate pool: one search per interest, globally capped.
	var pool []travel.PlaceCandidate
	for _, interest := range interests {
		for _, cand := range s.places.Search(ctx, destination, interest) {
			pool = append(pool, cand)
			if len(pool) >= maxPromptPlaces {
				break
			}
		}
		if len(pool) >= maxPromptPlaces {
			break
		}
	}

	checkIn, checkOut := resolveStayDates(t.StartDate, t.EndDate, t.Days)
	hotels := dedupeHotels(s.hotels.Search(ctx, destination, checkIn, checkOut))
	restaurants := dedupeRestaurants(s.restaurants.Search(ctx, destination))
	weather := s.weather.Current(ctx, destination)

	lat, lng, cerr := s.places.Coordinates(ctx, destination)
	if cerr != nil {
		log.Printf("itinerary: coordinates unavailable for %s: %v", destination, cerr)
	}

	params := ai.TripParams{
		Destination: destination,
		Days:        t.Days,
		Budget:      t.Budget,
		BudgetLevel: t.BudgetLevel,
		Interests:   t.Interests,
		Pace:        t.TravelPace,
	}

	promptPlaces := s.buildPromptPlaces(pool, hotels, restaurants)
	prompt := ai.BuildItineraryPrompt(params, promptPlaces, ai.WeatherContext(weather), s.cfg.CurrencySymbol, s.cfg.CurrencyCode)

	mock := ai.MockContext{
		Hotels:      hotelContexts(hotels),
		Restaurants: restaurantContexts(restaurants),
		Attractions: attractionContexts(pool),
		Lat:         lat,
		Lng:         lng,
	}

	parsed, err := s.gen.Generate(ctx, prompt, params, mock)
	if err != nil {
		return nil, err
	}

	days := getMapSlice(parsed, "days")
	filterDuplicatePlaces(days, s.cfg.FuzzyDupMinLen)
	days = ensureDayCount(days, t.Days, lat, lng)
	costs := CalculateCosts(days, s.cfg.CurrencySymbol)

	topHotels := s.authoritativeHotels(hotels, getMapSlice(parsed, "topHotels"), destination, lat, lng)

	now := time.Now().UTC()
	it := &Itinerary{
		ItineraryID:    uuid.NewString(),
		TripID:         t.ID,
		UserID:         t.UserID,
		Destination:    destination,
		SafetyAdvisory: getString(parsed, "safetyAdvisory"),
		TravelTips:     getStringSlice(parsed, "travelTips"),
		TopHotels:      topHotels,
		Days:           days,
		CostSummary:    costs,
		CurrencySymbol: s.cfg.CurrencySymbol,
		CurrencyCode:   s.cfg.CurrencyCode,
		AIVersion:      getString(parsed, ai.UsedModelKey),
		GeneratedFrom:  GeneratedInitial,
		LastPromptUsed: prompt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Insert(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// GetByTrip returns the stored itinerary for a trip owned by the user.
func (s *Service) GetByTrip(ctx context.Context, tripID, userID string) (*Itinerary, error) {
	if _, err := s.trips.Get(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.GetByTripID(ctx, tripID)
}

// forceSearchInterests derives the place-search interest list: dining and
// lodging coverage is guaranteed, the list is capped at three searches, and
// an attractions query is appended when nothing sightseeing-flavored made
// the cut.
func forceSearchInterests(interests []string) []string {
	out := append([]string(nil), interests...)

	if !containsAny(out, "food", "dining", "restaurants") {
		out = append(out, "Restaurants")
	}
	if !containsAny(out, "hotels", "accommodation", "stay") {
		out = append(out, "Hotels")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	if !containsAny(out, "attractions", "sightseeing") {
		out = append(out, "Top Attractions")
	}
	return out
}

func containsAny(interests []string, keywords ...string) bool {
	for _, interest := range interests {
		lower := strings.ToLower(interest)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// resolveStayDates normalizes trip dates for the hotel engine, which
// requires both. Timestamps are truncated to their date part; missing dates
// default to a one-week lead time with the trip's duration.
func resolveStayDates(start, end string, days int) (string, string) {
	checkIn := truncateDate(start)
	checkOut := truncateDate(end)

	if checkIn == "" {
		checkIn = time.Now().AddDate(0, 0, 7).Format(dateLayout)
	}
	if checkOut == "" {
		in, err := time.Parse(dateLayout, checkIn)
		if err != nil {
			in = time.Now().AddDate(0, 0, 7)
		}
		d := days
		if d <= 0 {
			d = 3
		}
		checkOut = in.AddDate(0, 0, d).Format(dateLayout)
	}
	return checkIn, checkOut
}

func truncateDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i >= 0 {
		s = s[:i]
	}
	return s
}

func dedupeHotels(in []travel.HotelCandidate) []travel.HotelCandidate {
	seen := make(map[string]bool)
	out := make([]travel.HotelCandidate, 0, len(in))
	for _, h := range in {
		key := strings.ToLower(strings.TrimSpace(h.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

func dedupeRestaurants(in []travel.RestaurantCandidate) []travel.RestaurantCandidate {
	seen := make(map[string]bool)
	out := make([]travel.RestaurantCandidate, 0, len(in))
	for _, r := range in {
		key := strings.ToLower(strings.TrimSpace(r.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func (s *Service) buildPromptPlaces(
	pool []travel.PlaceCandidate,
	hotels []travel.HotelCandidate,
	restaurants []travel.RestaurantCandidate,
) []ai.PlaceContext {
	places := make([]ai.PlaceContext, 0, maxPromptPlaces+maxPromptHotels+maxPromptDining)

	// The attraction pool is capped on its own; hotel and restaurant context
	// rides along beyond that cap so a big pool never crowds them out.
	for i, cand := range pool {
		if i >= maxPromptPlaces {
			break
		}
		places = append(places, ai.PlaceContext{
			Name:     cand.Name,
			Category: "Attraction",
			Address:  cand.Address,
			Lat:      cand.Lat,
			Lng:      cand.Lng,
		})
	}
	for i, h := range hotels {
		if i >= maxPromptHotels {
			break
		}
		places = append(places, ai.PlaceContext{
			Name:          h.Name,
			Category:      "Hotel",
			Description:   h.Description,
			EstimatedCost: s.normalizePrice(h.RatePerNight) + " per night",
			BookingURL:    h.Link,
			Lat:           h.Lat,
			Lng:           h.Lng,
		})
	}
	for i, r := range restaurants {
		if i >= maxPromptDining {
			break
		}
		places = append(places, ai.PlaceContext{
			Name:        r.Name,
			Category:    "Food",
			Description: r.Description,
			Address:     r.Address,
			Lat:         r.Lat,
			Lng:         r.Lng,
		})
	}
	return places
}

// authoritativeHotels builds the topHotels block. Externally sourced
// candidates outrank whatever the model invented; the model's list is only a
// fallback, and a single placeholder stay covers the fully-degraded case.
func (s *Service) authoritativeHotels(
	real []travel.HotelCandidate,
	fromModel []map[string]any,
	destination string,
	lat, lng float64,
) []map[string]any {
	if len(real) > 0 {
		out := make([]map[string]any, 0, 5)
		for i, h := range real {
			if i >= 5 {
				break
			}
			out = append(out, map[string]any{
				"name":        h.Name,
				"description": h.Description,
				"price":       s.normalizePrice(h.RatePerNight) + " per night",
				"rating":      h.Rating,
				"reviews":     h.Reviews,
				"amenities":   h.Amenities,
				"bookingUrl":  h.Link,
				"lat":         h.Lat,
				"lng":         h.Lng,
			})
		}
		return out
	}

	if len(fromModel) > 0 {
		return fromModel
	}

	return []map[string]any{{
		"name":        "Local Recommended Stay",
		"description": fmt.Sprintf("A comfortable, well-reviewed stay in %s. Exact availability varies by season.", destination),
		"price":       s.cfg.CurrencySymbol + "3,500 per night",
		"rating":      4.0,
		"bookingUrl":  "",
		"lat":         lat,
		"lng":         lng,
	}}
}

// normalizePrice converts USD-denominated external rates ("$42") into the
// working currency at the configured rate; anything else passes through.
func (s *Service) normalizePrice(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.cfg.CurrencySymbol + "3,500"
	}
	if !strings.HasPrefix(raw, "$") {
		return raw
	}
	clean := strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%s%d", s.cfg.CurrencySymbol, int(math.Round(f*s.cfg.USDRate)))
}

func hotelContexts(in []travel.HotelCandidate) []ai.HotelContext {
	out := make([]ai.HotelContext, 0, len(in))
	for _, h := range in {
		out = append(out, ai.HotelContext{
			Name:        h.Name,
			Description: h.Description,
			Price:       h.RatePerNight,
			Rating:      h.Rating,
			BookingURL:  h.Link,
			Lat:         h.Lat,
			Lng:         h.Lng,
		})
	}
	return out
}

func restaurantContexts(in []travel.RestaurantCandidate) []ai.RestaurantContext {
	out := make([]ai.RestaurantContext, 0, len(in))
	for _, r := range in {
		out = append(out, ai.RestaurantContext{
			Name:        r.Name,
			Type:        r.Type,
			Description: r.Description,
			Lat:         r.Lat,
			Lng:         r.Lng,
		})
	}
	return out
}

func attractionContexts(in []travel.PlaceCandidate) []ai.PlaceContext {
	out := make([]ai.PlaceContext, 0, len(in))
	for _, p := range in {
		out = append(out, ai.PlaceContext{
			Name:     p.Name,
			Category: "Attraction",
			Address:  p.Address,
			Lat:      p.Lat,
			Lng:      p.Lng,
		})
	}
	return out
}
