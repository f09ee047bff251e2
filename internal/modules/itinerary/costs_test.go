package itinerary

import (
	"math"
	"testing"
)

func day(places ...map[string]any) map[string]any {
	anyPlaces := make([]any, len(places))
	for i, p := range places {
		anyPlaces[i] = p
	}
	return map[string]any{"dayNumber": 1, "places": anyPlaces}
}

func place(name, category string, cost any) map[string]any {
	return map[string]any{"name": name, "category": category, "estimatedCost": cost}
}

func TestCalculateCosts_CategoryRouting(t *testing.T) {
	days := []map[string]any{
		day(
			place("Breakfast Cafe", "Food", "₹500"),
			place("City Museum", "Attraction", "₹200"),
			place("Grand Hotel", "Hotel", "₹3,500"),
			place("River Cruise", "Activity", 800.0),
		),
	}

	got := CalculateCosts(days, "₹")

	if got.Food != 500 {
		t.Errorf("Food = %v, want 500", got.Food)
	}
	if got.Stay != 3500 {
		t.Errorf("Stay = %v, want 3500", got.Stay)
	}
	// Attraction and Activity both land in the activities bucket.
	if got.Activities != 1000 {
		t.Errorf("Activities = %v, want 1000", got.Activities)
	}

	daySum := 500.0 + 3500 + 200 + 800
	wantTransport := math.Round(daySum*0.15*100) / 100
	if got.Transport != wantTransport {
		t.Errorf("Transport = %v, want %v", got.Transport, wantTransport)
	}
	if got.Total != got.Food+got.Stay+got.Activities+got.Transport {
		t.Errorf("Total = %v, want sum of buckets %v", got.Total, got.Food+got.Stay+got.Activities+got.Transport)
	}
}

func TestCalculateCosts_WritesDayTotal(t *testing.T) {
	d := day(
		place("Lunch Spot", "Food", "₹1,000"),
		place("Old Fort", "Attraction", "₹500"),
	)
	CalculateCosts([]map[string]any{d}, "₹")

	// 1500 items + 225 transport.
	if got := d["totalDayCost"]; got != 1725.0 {
		t.Errorf("totalDayCost = %v, want 1725", got)
	}
}

func TestCalculateCosts_EmptyDays(t *testing.T) {
	got := CalculateCosts(nil, "₹")
	if got.Total != 0 || got.Transport != 0 {
		t.Errorf("empty itinerary should cost nothing, got %+v", got)
	}
}

func TestParseCost(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"plain float", 350.5, 350.5},
		{"int", 400, 400},
		{"symbol prefix", "₹1,200", 1200},
		{"dollar prefix", "$40", 40},
		{"spaces", "  ₹750 ", 750},
		{"free text", "Free", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"bool garbage", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCost(tt.raw, "₹"); got != tt.want {
				t.Errorf("parseCost(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
