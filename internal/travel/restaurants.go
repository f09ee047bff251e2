package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// RestaurantCandidate is an external restaurant search result.
type RestaurantCandidate struct {
	Name        string
	Rating      float64
	Reviews     int
	Type        string
	Address     string
	Lat         float64
	Lng         float64
	Description string
}

// RestaurantService searches restaurants through SerpAPI's Google Local
// engine, with a Redis cache in front since results change slowly.
type RestaurantService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *Cache
}

func NewRestaurantService(apiKey string, cache *Cache) *RestaurantService {
	return &RestaurantService{
		apiKey:  apiKey,
		baseURL: defaultSerpAPIURL,
		client:  &http.Client{Timeout: 25 * time.Second},
		cache:   cache,
	}
}

type serpLocalResponse struct {
	LocalResults []struct {
		Title          string  `json:"title"`
		Rating         float64 `json:"rating"`
		Reviews        int     `json:"reviews"`
		Type           string  `json:"type"`
		Address        string  `json:"address"`
		Description    string  `json:"description"`
		GPSCoordinates struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"gps_coordinates"`
	} `json:"local_results"`
}

// Search returns up to 10 restaurant candidates for the location.
// Failures degrade to an empty list.
func (s *RestaurantService) Search(ctx context.Context, location string) []RestaurantCandidate {
	cacheKey := "restaurants:" + location
	var cached []RestaurantCandidate
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached
	}

	if s.apiKey == "" {
		log.Printf("travel: SERPAPI_API_KEY not configured, skipping restaurant search")
		return nil
	}

	params := url.Values{}
	params.Set("engine", "google_local")
	params.Set("q", fmt.Sprintf("best restaurants in %s", location))
	params.Set("api_key", s.apiKey)
	params.Set("hl", "en")
	params.Set("gl", "in")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}
	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("travel: restaurant search error: %v", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("travel: restaurant search status %d: %s", resp.StatusCode, string(body))
		return nil
	}

	var parsed serpLocalResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Printf("travel: restaurant decode error: %v", err)
		return nil
	}

	var restaurants []RestaurantCandidate
	for i, res := range parsed.LocalResults {
		if i >= 10 {
			break
		}
		desc := res.Description
		if desc == "" {
			desc = fmt.Sprintf("Highly rated local dining in %s.", location)
		}
		restaurants = append(restaurants, RestaurantCandidate{
			Name:        res.Title,
			Rating:      res.Rating,
			Reviews:     res.Reviews,
			Type:        res.Type,
			Address:     res.Address,
			Lat:         res.GPSCoordinates.Latitude,
			Lng:         res.GPSCoordinates.Longitude,
			Description: desc,
		})
	}

	if len(restaurants) > 0 {
		s.cache.SetJSON(ctx, cacheKey, restaurants)
	}
	return restaurants
}
