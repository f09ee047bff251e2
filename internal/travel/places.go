package travel

import (
	"context"
	"fmt"
	"log"

	"googlemaps.github.io/maps"
)

// PlaceCandidate is a point-of-interest result proposed as prompt context.
type PlaceCandidate struct {
	Name    string
	Lat     float64
	Lng     float64
	Address string
}

// coordinateFallbacks covers frequent destinations so geocoding hiccups never
// stall generation.
var coordinateFallbacks = map[string][2]float64{
	"Chennai":   {13.0827, 80.2707},
	"Kerala":    {10.8505, 76.2711},
	"Delhi":     {28.6139, 77.2090},
	"Mumbai":    {19.0760, 72.8777},
	"Bengaluru": {12.9716, 77.5946},
	"Bangalore": {12.9716, 77.5946},
	"Tirupati":  {13.6288, 79.4192},
	"Kolkata":   {22.5726, 88.3639},
}

// PlacesService handles geocoding and place-candidate search via the Google
// Maps APIs.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// Coordinates resolves a place name to (lat, lng). Known cities resolve from
// the fallback table without a network call.
func (s *PlacesService) Coordinates(ctx context.Context, placeName string) (float64, float64, error) {
	if c, ok := coordinateFallbacks[placeName]; ok {
		return c[0], c[1], nil
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{Address: placeName})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", placeName)
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// Search returns up to 20 place candidates matching an interest near the
// destination. Failures degrade to an empty list; generation proceeds with
// reduced context.
func (s *PlacesService) Search(ctx context.Context, destination, interest string) []PlaceCandidate {
	r := &maps.TextSearchRequest{
		Query:    fmt.Sprintf("%s in %s", interest, destination),
		Language: "en",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		log.Printf("travel: places search error for %q/%q: %v", destination, interest, err)
		return nil
	}

	var results []PlaceCandidate
	for _, result := range resp.Results {
		results = append(results, PlaceCandidate{
			Name:    result.Name,
			Lat:     result.Geometry.Location.Lat,
			Lng:     result.Geometry.Location.Lng,
			Address: result.FormattedAddress,
		})
		if len(results) >= 20 {
			break
		}
	}
	return results
}
