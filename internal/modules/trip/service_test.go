package trip

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func newMockService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewService(NewStore(mock)), mock
}

func TestService_Create(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec(`INSERT INTO trips`).
		WithArgs(
			pgxmock.AnyArg(), "user-1", "Kolkata", "2026-09-10", "2026-09-12",
			3, 40000.0, "Balanced", pgxmock.AnyArg(), "Balanced", StatusCreated, pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := svc.Create(context.Background(), CreateCommand{
		UserID:      "user-1",
		Destination: "Kolkatta", // misspelling is corrected
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-12",
		Budget:      40000,
		Interests:   []string{"History"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got.Destination != "Kolkata" {
		t.Errorf("Destination = %q, want sanitized Kolkata", got.Destination)
	}
	if got.Days != 3 {
		t.Errorf("Days = %d, want 3 derived from the date range", got.Days)
	}
	if got.BudgetLevel != "Balanced" || got.TravelPace != "Balanced" {
		t.Errorf("defaults not applied: %+v", got)
	}
	if got.ID == "" {
		t.Error("ID should be assigned")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestService_Create_DayDerivation(t *testing.T) {
	tests := []struct {
		name     string
		cmd      CreateCommand
		wantDays int
	}{
		{
			name:     "single day range",
			cmd:      CreateCommand{StartDate: "2026-09-10", EndDate: "2026-09-10"},
			wantDays: 1,
		},
		{
			name:     "inverted range clamps to one",
			cmd:      CreateCommand{StartDate: "2026-09-12", EndDate: "2026-09-10"},
			wantDays: 1,
		},
		{
			name:     "no dates, explicit days",
			cmd:      CreateCommand{Days: 5},
			wantDays: 5,
		},
		{
			name:     "nothing given defaults to three",
			cmd:      CreateCommand{},
			wantDays: 3,
		},
		{
			name:     "unparsable dates fall back to explicit days",
			cmd:      CreateCommand{StartDate: "next tuesday", EndDate: "later", Days: 4},
			wantDays: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newMockService(t)
			mock.ExpectExec(`INSERT INTO trips`).
				WithArgs(
					pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					tt.wantDays, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				).
				WillReturnResult(pgxmock.NewResult("INSERT", 1))

			tt.cmd.UserID = "user-1"
			tt.cmd.Destination = "Goa"
			got, err := svc.Create(context.Background(), tt.cmd)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if got.Days != tt.wantDays {
				t.Errorf("Days = %d, want %d", got.Days, tt.wantDays)
			}
		})
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newMockService(t)

	if _, err := svc.Create(context.Background(), CreateCommand{Destination: "Goa"}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("missing user: error = %v, want ErrBadRequest", err)
	}
	if _, err := svc.Create(context.Background(), CreateCommand{UserID: "user-1"}); !errors.Is(err, ErrBadRequest) {
		t.Errorf("missing destination: error = %v, want ErrBadRequest", err)
	}
}

func TestService_GetAndList(t *testing.T) {
	svc, mock := newMockService(t)
	now := time.Now()
	cols := []string{
		"id", "user_id", "destination", "start_date", "end_date",
		"days", "budget", "budget_level", "interests", "travel_pace", "status", "created_at",
	}

	mock.ExpectQuery(`SELECT id, user_id, destination`).
		WithArgs("trip-1", "user-1").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(
			"trip-1", "user-1", "Kolkata", "2026-09-10", "2026-09-12",
			3, 40000.0, "Balanced", []string{"History"}, "Balanced", StatusCreated, now,
		))

	got, err := svc.Get(context.Background(), "trip-1", "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "trip-1" || got.Destination != "Kolkata" {
		t.Errorf("got %+v", got)
	}

	// Ownership scoping: wrong user sees nothing.
	mock.ExpectQuery(`SELECT id, user_id, destination`).
		WithArgs("trip-1", "other-user").
		WillReturnRows(pgxmock.NewRows(cols))

	if _, err := svc.Get(context.Background(), "trip-1", "other-user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}

	mock.ExpectQuery(`SELECT id, user_id, destination`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("trip-2", "user-1", "Goa", "", "", 4, 20000.0, "Budget", []string{}, "Relaxed", StatusCreated, now).
			AddRow("trip-1", "user-1", "Kolkata", "2026-09-10", "2026-09-12", 3, 40000.0, "Balanced", []string{"History"}, "Balanced", StatusCreated, now.Add(-time.Hour)))

	trips, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(trips) != 2 || trips[0].ID != "trip-2" {
		t.Errorf("trips = %+v", trips)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSanitizeDestination(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Kolkatta", "Kolkata"},
		{"Banglore", "Bengaluru"},
		{"kerela backwaters", "Kerala backwaters"},
		{"Kerela", "Kerala"},
		{"Paris", "Paris"},
	}
	for _, tt := range tests {
		if got := SanitizeDestination(tt.in); got != tt.want {
			t.Errorf("SanitizeDestination(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
