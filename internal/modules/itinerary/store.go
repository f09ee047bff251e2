package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"journey360/internal/db"
)

var ErrNotFound = errors.New("itinerary not found")

// Store persists itineraries in the itineraries table. Document-shaped
// fields (days, top_hotels, cost_summary) live in jsonb columns.
type Store struct {
	db db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{db: q}
}

func (s *Store) Insert(ctx context.Context, it *Itinerary) error {
	days, err := json.Marshal(it.Days)
	if err != nil {
		return fmt.Errorf("marshal days: %w", err)
	}
	hotels, err := json.Marshal(it.TopHotels)
	if err != nil {
		return fmt.Errorf("marshal top hotels: %w", err)
	}
	costs, err := json.Marshal(it.CostSummary)
	if err != nil {
		return fmt.Errorf("marshal cost summary: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO itineraries (
			itinerary_id, trip_id, user_id, destination, days, top_hotels,
			cost_summary, safety_advisory, travel_tips, currency_symbol,
			currency_code, ai_version, generated_from, last_prompt_used,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		it.ItineraryID, it.TripID, it.UserID, it.Destination, days, hotels,
		costs, it.SafetyAdvisory, it.TravelTips, it.CurrencySymbol,
		it.CurrencyCode, it.AIVersion, it.GeneratedFrom, it.LastPromptUsed,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert itinerary: %w", err)
	}
	return nil
}

func (s *Store) GetByTripID(ctx context.Context, tripID string) (*Itinerary, error) {
	row := s.db.QueryRow(ctx, `
		SELECT itinerary_id, trip_id, user_id, destination, days, top_hotels,
			cost_summary, safety_advisory, travel_tips, currency_symbol,
			currency_code, ai_version, generated_from, last_prompt_used,
			created_at, updated_at
		FROM itineraries
		WHERE trip_id = $1`,
		tripID,
	)

	var (
		it     Itinerary
		days   []byte
		hotels []byte
		costs  []byte
	)
	err := row.Scan(
		&it.ItineraryID, &it.TripID, &it.UserID, &it.Destination, &days,
		&hotels, &costs, &it.SafetyAdvisory, &it.TravelTips,
		&it.CurrencySymbol, &it.CurrencyCode, &it.AIVersion,
		&it.GeneratedFrom, &it.LastPromptUsed, &it.CreatedAt, &it.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get itinerary: %w", err)
	}

	if err := json.Unmarshal(days, &it.Days); err != nil {
		return nil, fmt.Errorf("decode days: %w", err)
	}
	if err := json.Unmarshal(hotels, &it.TopHotels); err != nil {
		return nil, fmt.Errorf("decode top hotels: %w", err)
	}
	if err := json.Unmarshal(costs, &it.CostSummary); err != nil {
		return nil, fmt.Errorf("decode cost summary: %w", err)
	}
	return &it, nil
}

// UpdateRegenerated replaces the regenerable fields of an existing itinerary
// in place. The caller stamps UpdatedAt.
func (s *Store) UpdateRegenerated(ctx context.Context, it *Itinerary) error {
	days, err := json.Marshal(it.Days)
	if err != nil {
		return fmt.Errorf("marshal days: %w", err)
	}
	hotels, err := json.Marshal(it.TopHotels)
	if err != nil {
		return fmt.Errorf("marshal top hotels: %w", err)
	}
	costs, err := json.Marshal(it.CostSummary)
	if err != nil {
		return fmt.Errorf("marshal cost summary: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE itineraries
		SET days = $1, top_hotels = $2, cost_summary = $3, safety_advisory = $4,
			travel_tips = $5, ai_version = $6, generated_from = $7,
			last_prompt_used = $8, updated_at = $9
		WHERE itinerary_id = $10`,
		days, hotels, costs, it.SafetyAdvisory,
		it.TravelTips, it.AIVersion, it.GeneratedFrom,
		it.LastPromptUsed, it.UpdatedAt, it.ItineraryID,
	)
	if err != nil {
		return fmt.Errorf("update itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
