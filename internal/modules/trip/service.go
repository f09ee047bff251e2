// README: Trip service: create with day-count derivation, list, get.
package trip

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrBadRequest = errors.New("bad request")

const dateLayout = "2006-01-02"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	UserID      string
	Destination string
	StartDate   string
	EndDate     string
	Days        int
	Budget      float64
	BudgetLevel string
	Interests   []string
	TravelPace  string
}

// Create registers a new trip. The day count is derived from the date range
// when both dates parse (inclusive, minimum 1), otherwise the explicit count
// or a 3-day default applies.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Trip, error) {
	if cmd.UserID == "" || cmd.Destination == "" {
		return nil, ErrBadRequest
	}

	days := cmd.Days
	if d1, err1 := time.Parse(dateLayout, cmd.StartDate); err1 == nil {
		if d2, err2 := time.Parse(dateLayout, cmd.EndDate); err2 == nil {
			days = int(d2.Sub(d1).Hours()/24) + 1
			if days <= 0 {
				days = 1
			}
		}
	}
	if days <= 0 {
		days = 3
	}

	pace := cmd.TravelPace
	if pace == "" {
		pace = "Balanced"
	}
	level := cmd.BudgetLevel
	if level == "" {
		level = "Balanced"
	}

	t := &Trip{
		ID:          uuid.NewString(),
		UserID:      cmd.UserID,
		Destination: SanitizeDestination(cmd.Destination),
		StartDate:   cmd.StartDate,
		EndDate:     cmd.EndDate,
		Days:        days,
		Budget:      cmd.Budget,
		BudgetLevel: level,
		Interests:   cmd.Interests,
		TravelPace:  pace,
		Status:      StatusCreated,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Trip, error) {
	return s.store.Get(ctx, id, userID)
}

func (s *Service) List(ctx context.Context, userID string) ([]Trip, error) {
	return s.store.ListByUser(ctx, userID)
}
