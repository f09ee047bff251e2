package itinerary

import (
	"context"
	"log"
	"time"

	"journey360/internal/ai"
)

// RegenerateCommand carries a revision request against an existing itinerary.
type RegenerateCommand struct {
	TripID      string
	UserID      string
	Instruction string
	Constraints map[string]any
}

// Regenerate revises an existing itinerary in place from a user instruction.
// Unlike initial generation it runs no duplicate filtering or day backfill:
// the current itinerary is already normalized and the model is instructed to
// edit it, not rebuild it. A failed AI call degrades to the current
// structure rather than erroring the request; the fallback still runs the
// full recompute-and-persist path, so UpdatedAt always advances.
func (s *Service) Regenerate(ctx context.Context, cmd RegenerateCommand) (*Itinerary, error) {
	if cmd.TripID == "" || cmd.Instruction == "" {
		return nil, ErrBadRequest
	}

	mu := s.tripLock(cmd.TripID)
	mu.Lock()
	defer mu.Unlock()

	t, err := s.trips.Get(ctx, cmd.TripID, cmd.UserID)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.GetByTripID(ctx, cmd.TripID)
	if err != nil {
		return nil, err
	}

	params := ai.TripParams{
		Destination: t.Destination,
		Days:        t.Days,
		Budget:      t.Budget,
		BudgetLevel: t.BudgetLevel,
		Interests:   t.Interests,
		Pace:        t.TravelPace,
	}
	prompt := ai.BuildRegenerationPrompt(params, existing.Days, existing.TopHotels, cmd.Instruction, cmd.Constraints)

	parsed, err := s.gen.Generate(ctx, prompt, params, ai.MockContext{})
	if err != nil {
		log.Printf("itinerary: regeneration failed for trip %s, keeping current structure: %v", cmd.TripID, err)
		parsed = nil
	}

	days := getMapSlice(parsed, "days")
	if len(days) == 0 {
		days = existing.Days
	}
	topHotels := getMapSlice(parsed, "topHotels")
	if len(topHotels) == 0 {
		topHotels = existing.TopHotels
	}
	tips := getStringSlice(parsed, "travelTips")
	if len(tips) == 0 {
		tips = existing.TravelTips
	}
	advisory := getString(parsed, "safetyAdvisory")
	if advisory == "" {
		advisory = existing.SafetyAdvisory
	}

	existing.Days = days
	existing.TopHotels = topHotels
	existing.TravelTips = tips
	existing.SafetyAdvisory = advisory
	existing.CostSummary = CalculateCosts(days, s.cfg.CurrencySymbol)
	if model := getString(parsed, ai.UsedModelKey); model != "" {
		existing.AIVersion = model
	}
	existing.GeneratedFrom = GeneratedRegenerate
	existing.LastPromptUsed = prompt
	existing.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateRegenerated(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
