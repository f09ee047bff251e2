package travel

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherSnapshot is the condensed weather context passed into prompt
// construction.
type WeatherSnapshot struct {
	Description string  `json:"description"`
	TempC       float64 `json:"tempC"`
	Humidity    int     `json:"humidity,omitempty"`
}

// defaultWeather substitutes for any lookup failure; weather is best-effort
// context, never an error source.
var defaultWeather = WeatherSnapshot{Description: "clear sky", TempC: 25.0}

// WeatherService fetches current conditions from OpenWeather.
type WeatherService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	cache   *Cache
}

func NewWeatherService(apiKey string, cache *Cache) *WeatherService {
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: defaultOpenWeatherURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		cache:   cache,
	}
}

type openWeatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
}

// Current returns the weather snapshot for a city. It never fails: missing
// keys, network errors, and bad payloads all yield the default snapshot.
func (s *WeatherService) Current(ctx context.Context, city string) WeatherSnapshot {
	cacheKey := "weather:" + city
	var cached WeatherSnapshot
	if s.cache.GetJSON(ctx, cacheKey, &cached) {
		return cached
	}

	if s.apiKey == "" {
		return defaultWeather
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return defaultWeather
	}
	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("travel: weather error for %s: %v", city, err)
		return defaultWeather
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return defaultWeather
	}

	var parsed openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return defaultWeather
	}

	snapshot := WeatherSnapshot{TempC: parsed.Main.Temp, Humidity: parsed.Main.Humidity}
	if len(parsed.Weather) > 0 {
		snapshot.Description = parsed.Weather[0].Description
	}
	if snapshot.Description == "" {
		snapshot.Description = defaultWeather.Description
	}

	s.cache.SetJSON(ctx, cacheKey, snapshot)
	return snapshot
}
