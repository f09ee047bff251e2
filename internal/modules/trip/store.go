// README: Trip store backed by PostgreSQL.
package trip

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"journey360/internal/db"
)

var ErrNotFound = errors.New("trip not found")

type Store struct {
	db db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{db: q}
}

func (s *Store) Create(ctx context.Context, t *Trip) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trips (
			id, user_id, destination, start_date, end_date,
			days, budget, budget_level, interests, travel_pace, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.UserID, t.Destination, t.StartDate, t.EndDate,
		t.Days, t.Budget, t.BudgetLevel, t.Interests, t.TravelPace, t.Status, t.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id, userID string) (*Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, destination, start_date, end_date,
		       days, budget, budget_level, interests, travel_pace, status, created_at
		FROM trips
		WHERE id = $1 AND user_id = $2`, id, userID,
	)
	var t Trip
	err := row.Scan(
		&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate,
		&t.Days, &t.Budget, &t.BudgetLevel, &t.Interests, &t.TravelPace, &t.Status, &t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, destination, start_date, end_date,
		       days, budget, budget_level, interests, travel_pace, status, created_at
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		var t Trip
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate,
			&t.Days, &t.Budget, &t.BudgetLevel, &t.Interests, &t.TravelPace, &t.Status, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
