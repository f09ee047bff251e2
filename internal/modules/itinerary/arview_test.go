package itinerary

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func nearbyService(t *testing.T, daysJSON string) *Service {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	now := time.Now()
	mock.ExpectQuery(`SELECT itinerary_id, trip_id, user_id, destination`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"itinerary_id", "trip_id", "user_id", "destination", "days", "top_hotels",
			"cost_summary", "safety_advisory", "travel_tips", "currency_symbol",
			"currency_code", "ai_version", "generated_from", "last_prompt_used",
			"created_at", "updated_at",
		}).AddRow(
			"itin-1", "trip-1", "user-1", "Paris",
			[]byte(daysJSON), []byte(`[]`), []byte(`{}`),
			"", []string{}, "₹", "INR", "m", GeneratedInitial, "", now, now,
		))

	return NewService(
		&stubTrips{trip: parisTrip()},
		NewStore(mock),
		&stubPlaces{}, &stubHotels{}, &stubRestaurants{}, stubWeather{},
		&stubGen{},
		testConfig(),
	)
}

func TestService_NearbyPlaces_FiltersAndSorts(t *testing.T) {
	days := `[{
		"dayNumber": 1,
		"places": [
			{"name": "Eiffel Tower", "category": "attraction", "lat": 48.8584, "lng": 2.2945},
			{"name": "Musee d'Orsay", "category": "attraction", "lat": 48.8600, "lng": 2.3266},
			{"name": "Tuileries Garden", "category": "attraction", "lat": 48.8625, "lng": 2.3330},
			{"name": "Tuileries Garden", "category": "attraction", "lat": 48.8625, "lng": 2.3330}
		]
	}]`
	svc := nearbyService(t, days)

	// Viewer near the Louvre with a 2km radius: the Eiffel Tower (~3.2km) is
	// out of range, the garden is closer than the museum, and the duplicate
	// garden entry collapses to one.
	got, err := svc.NearbyPlaces(context.Background(), "trip-1", "user-1", 48.8606, 2.3376, 2000)
	if err != nil {
		t.Fatalf("NearbyPlaces() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d places, want 2: %+v", len(got), got)
	}
	if got[0].Name != "Tuileries Garden" || got[1].Name != "Musee d'Orsay" {
		t.Errorf("order = [%s, %s], want nearest first", got[0].Name, got[1].Name)
	}
	if got[0].DistanceM <= 0 || got[0].DistanceM > 2000 {
		t.Errorf("distance = %v, want within radius", got[0].DistanceM)
	}
	if got[0].Day != 1 {
		t.Errorf("day = %d, want 1", got[0].Day)
	}
}

func TestService_NearbyPlaces_SkipsUncoordinatedPlaces(t *testing.T) {
	days := `[{"dayNumber": 1, "places": [{"name": "Mystery Spot", "category": "attraction"}]}]`
	svc := nearbyService(t, days)

	got, err := svc.NearbyPlaces(context.Background(), "trip-1", "user-1", 48.8606, 2.3376, 0)
	if err != nil {
		t.Fatalf("NearbyPlaces() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d places, want 0 when nothing has coordinates", len(got))
	}
}
