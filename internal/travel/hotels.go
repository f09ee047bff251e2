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

const defaultSerpAPIURL = "https://serpapi.com/search"

// HotelCandidate is an external hotel search result.
type HotelCandidate struct {
	Name         string
	Description  string
	RatePerNight string
	TotalRate    string
	Rating       float64
	Reviews      int
	Amenities    []string
	Link         string
	Lat          float64
	Lng          float64
}

// Geocoder resolves a free-text query to coordinates.
type Geocoder interface {
	Coordinates(ctx context.Context, query string) (float64, float64, error)
}

// HotelService searches hotels through SerpAPI's Google Hotels engine.
// Results missing GPS coordinates are geocoded by hotel name when a geocoder
// is available.
type HotelService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	geo     Geocoder
}

func NewHotelService(apiKey string, geo Geocoder) *HotelService {
	return &HotelService{
		apiKey:  apiKey,
		baseURL: defaultSerpAPIURL,
		client:  &http.Client{Timeout: 25 * time.Second},
		geo:     geo,
	}
}

type serpHotelsResponse struct {
	Properties []struct {
		Name           string `json:"name"`
		Description    string `json:"description"`
		GPSCoordinates struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"gps_coordinates"`
		RatePerNight struct {
			Lowest string `json:"lowest"`
		} `json:"rate_per_night"`
		TotalRate struct {
			Lowest string `json:"lowest"`
		} `json:"total_rate"`
		OverallRating float64  `json:"overall_rating"`
		Reviews       int      `json:"reviews"`
		Amenities     []string `json:"amenities"`
		Link          string   `json:"link"`
	} `json:"properties"`
}

// Search returns up to 5 hotel candidates for the location and stay dates.
// The engine mandates check-in/check-out dates; callers resolve defaults
// before calling. Failures degrade to an empty list.
func (s *HotelService) Search(ctx context.Context, location, checkIn, checkOut string) []HotelCandidate {
	if s.apiKey == "" {
		log.Printf("travel: SERPAPI_API_KEY not configured, skipping hotel search")
		return nil
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", fmt.Sprintf("Hotels in %s", location))
	params.Set("api_key", s.apiKey)
	params.Set("hl", "en")
	params.Set("gl", "in")
	params.Set("currency", "INR")
	params.Set("check_in_date", checkIn)
	params.Set("check_out_date", checkOut)

	log.Printf("travel: searching hotels in %s (%s to %s)", location, checkIn, checkOut)

	var parsed serpHotelsResponse
	if err := s.getJSON(ctx, params, &parsed); err != nil {
		log.Printf("travel: hotel search error: %v", err)
		return nil
	}

	var hotels []HotelCandidate
	for i, prop := range parsed.Properties {
		if i >= 5 {
			break
		}
		desc := prop.Description
		if desc == "" {
			desc = "Premium accommodation found via Google Hotels."
		}
		amenities := prop.Amenities
		if len(amenities) > 3 {
			amenities = amenities[:3]
		}
		lat := prop.GPSCoordinates.Latitude
		lng := prop.GPSCoordinates.Longitude
		if lat == 0 && lng == 0 && s.geo != nil {
			glat, glng, gerr := s.geo.Coordinates(ctx, fmt.Sprintf("%s %s", prop.Name, location))
			if gerr != nil {
				log.Printf("travel: geocoding %q failed: %v", prop.Name, gerr)
			} else {
				lat, lng = glat, glng
			}
		}
		hotels = append(hotels, HotelCandidate{
			Name:         prop.Name,
			Description:  desc,
			RatePerNight: prop.RatePerNight.Lowest,
			TotalRate:    prop.TotalRate.Lowest,
			Rating:       prop.OverallRating,
			Reviews:      prop.Reviews,
			Amenities:    amenities,
			Link:         prop.Link,
			Lat:          lat,
			Lng:          lng,
		})
	}
	return hotels
}

func (s *HotelService) getJSON(ctx context.Context, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("serpapi status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
