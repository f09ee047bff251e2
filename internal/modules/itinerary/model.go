// README: Itinerary document model and cost summary.
package itinerary

import "time"

// CostSummary holds four category totals plus a grand total. Transport is
// derived (15% of each day's item costs), never independently sourced, and
// total must equal the sum of the four buckets to 2 decimals.
type CostSummary struct {
	Food       float64 `json:"food"`
	Stay       float64 `json:"stay"`
	Activities float64 `json:"activities"`
	Transport  float64 `json:"transport"`
	Total      float64 `json:"total"`
}

// Itinerary is the generated artifact, owned by exactly one trip. The
// LLM-shaped fragments (days, topHotels) stay loosely typed: the model's
// output is tolerated key-by-key with defaults rather than validated into
// rigid structs, and persisted as jsonb.
type Itinerary struct {
	ItineraryID    string           `json:"itineraryId"`
	TripID         string           `json:"tripId"`
	UserID         string           `json:"userId"`
	Destination    string           `json:"destination"`
	SafetyAdvisory string           `json:"safetyAdvisory"`
	TravelTips     []string         `json:"travelTips"`
	TopHotels      []map[string]any `json:"topHotels"`
	Days           []map[string]any `json:"days"`
	CostSummary    CostSummary      `json:"costSummary"`
	CurrencySymbol string           `json:"currencySymbol"`
	CurrencyCode   string           `json:"currencyCode"`
	AIVersion      string           `json:"aiVersion"`
	GeneratedFrom  string           `json:"generatedFrom"`
	LastPromptUsed string           `json:"lastPromptUsed"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Provenance values for GeneratedFrom.
const (
	GeneratedInitial    = "initial"
	GeneratedRegenerate = "regenerate"
)
