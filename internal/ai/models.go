package ai

// TripParams carries the trip fields the AI layer needs for prompt
// construction and provider selection.
type TripParams struct {
	Destination string
	Days        int
	Budget      float64
	BudgetLevel string
	Interests   []string
	Pace        string
}

// PlaceContext is one "local knowledge" entry embedded in the generation
// prompt. Field names match the wire contract the model is asked to follow.
type PlaceContext struct {
	Name          string  `json:"name"`
	Category      string  `json:"category,omitempty"`
	Description   string  `json:"description,omitempty"`
	EstimatedCost string  `json:"estimatedCost,omitempty"`
	BookingURL    string  `json:"bookingUrl,omitempty"`
	Address       string  `json:"address,omitempty"`
	Lat           float64 `json:"lat,omitempty"`
	Lng           float64 `json:"lng,omitempty"`
}

// HotelContext is an already-fetched hotel candidate, used by the offline
// mock generator.
type HotelContext struct {
	Name        string
	Description string
	Price       string
	Rating      float64
	BookingURL  string
	Lat         float64
	Lng         float64
}

// RestaurantContext is an already-fetched restaurant candidate, used by the
// offline mock generator.
type RestaurantContext struct {
	Name        string
	Type        string
	Description string
	Lat         float64
	Lng         float64
}

// MockContext pools the real candidates available to the offline generator.
type MockContext struct {
	Hotels      []HotelContext
	Restaurants []RestaurantContext
	Attractions []PlaceContext
	Lat         float64
	Lng         float64
}

// WeatherContext is the weather snapshot embedded in the generation prompt.
type WeatherContext struct {
	Description string  `json:"description"`
	TempC       float64 `json:"tempC"`
	Humidity    int     `json:"humidity,omitempty"`
}
