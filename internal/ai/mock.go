package ai

import (
	"fmt"
	"strings"
)

// kolkataAttractions and genericAttractions back the offline generator when
// no real attraction candidates were fetched.
var kolkataAttractions = []string{
	"Victoria Memorial", "Howrah Bridge", "Dakshineswar Kali Temple",
	"Indian Museum", "Eco Park", "Science City", "Princep Ghat",
	"Mothers Wax Museum", "Maidan", "St. Paul's Cathedral",
}

var genericAttractions = []string{
	"City Center Plaza", "Historical Museum", "Local Botanical Garden",
	"Riverside Walk", "Culture Center", "Martyrs' Square", "Heritage Tower",
}

// MockItinerary synthesizes a deterministic itinerary from whatever real
// candidates were already fetched, falling back to curated generic names.
// It returns the same map shape a live provider would, so the orchestrator's
// post-processing applies unchanged.
func MockItinerary(params TripParams, mock MockContext) map[string]any {
	duration := params.Days
	if duration <= 0 {
		duration = 3
	}
	dest := params.Destination
	if dest == "" {
		dest = "your destination"
	}
	lat, lng := mock.Lat, mock.Lng

	topHotels := mockHotels(mock.Hotels, lat, lng)
	hotelName := fmt.Sprintf("%s Stay", dest)
	if len(topHotels) > 0 {
		hotelName, _ = topHotels[0]["name"].(string)
	}

	breakfasts, lunches, dinners := mealPools(mock.Restaurants)

	attractions := kolkataAttractions
	if !strings.Contains(dest, "Kolkata") {
		attractions = genericAttractions
	}

	days := make([]map[string]any, 0, duration)
	for d := 1; d <= duration; d++ {
		bName := pickMeal(breakfasts, d-1, fmt.Sprintf("%s Breakfast Spot", dest))
		lName := pickMeal(lunches, d-1, fmt.Sprintf("Local %s Lunch", dest))
		dName := pickMeal(dinners, d-1, fmt.Sprintf("Fine Dining in %s", dest))

		attr1 := mockAttraction(mock.Attractions, attractions, (d-1)*2, dest, "Landmark", lat, lng)
		attr2 := mockAttraction(mock.Attractions, attractions, (d-1)*2+1, dest, "Public Park", lat, lng)

		days = append(days, map[string]any{
			"dayNumber":    d,
			"weatherNote":  fmt.Sprintf("A wonderful day for exploration in %s.", dest),
			"totalDayCost": 0.0,
			"places": []any{
				map[string]any{"name": bName, "category": "food", "estimatedCost": 500, "timeSlot": "breakfast", "duration": "1h", "lat": lat + 0.001, "lng": lng - 0.001, "description": fmt.Sprintf("Enjoy a local breakfast at %s on Day %d.", bName, d), "safetyRating": "High"},
				map[string]any{"name": attr1["name"], "category": "attraction", "estimatedCost": 200, "timeSlot": "morning", "duration": "2h", "lat": attr1["lat"], "lng": attr1["lng"], "description": attr1["description"], "safetyRating": "High"},
				map[string]any{"name": lName, "category": "food", "estimatedCost": 800, "timeSlot": "lunch", "duration": "1h", "lat": lat - 0.005, "lng": lng + 0.008, "description": fmt.Sprintf("Authentic lunch experience at %s.", lName), "safetyRating": "High"},
				map[string]any{"name": attr2["name"], "category": "attraction", "estimatedCost": 200, "timeSlot": "afternoon", "duration": "2h", "lat": attr2["lat"], "lng": attr2["lng"], "description": attr2["description"], "safetyRating": "High"},
				map[string]any{"name": dName, "category": "food", "estimatedCost": 1200, "timeSlot": "dinner", "duration": "2h", "lat": lat + 0.003, "lng": lng - 0.008, "description": fmt.Sprintf("Fine dining evening at %s.", dName), "safetyRating": "High"},
				map[string]any{"name": hotelName, "category": "hotel", "estimatedCost": 3500, "timeSlot": "evening", "duration": "overnight", "lat": lat, "lng": lng, "description": fmt.Sprintf("Comfortable stay at %s.", hotelName), "safetyRating": "High"},
			},
		})
	}

	hotels := make([]any, 0, len(topHotels))
	for _, h := range topHotels {
		hotels = append(hotels, h)
	}

	return map[string]any{
		"safetyAdvisory": fmt.Sprintf("NOTICE: The AI is currently at maximum capacity. This is a stabilized %s fallback itinerary. Please try 'Regenerate' in 60 seconds for premium AI results.", dest),
		"travelTips":     []any{"Carry a water bottle", "Use local transport"},
		"topHotels":      hotels,
		"days":           toAnySlice(days),
		"is_mock":        true,
	}
}

func mockHotels(real []HotelContext, lat, lng float64) []map[string]any {
	if len(real) > 0 {
		out := make([]map[string]any, 0, 5)
		for i, h := range real {
			if i >= 5 {
				break
			}
			rating := h.Rating
			if rating == 0 {
				rating = 4.5
			}
			desc := h.Description
			if desc == "" {
				desc = "A great place to stay"
			}
			out = append(out, map[string]any{
				"name":        h.Name,
				"price":       h.Price,
				"description": truncate(desc, 100),
				"lat":         h.Lat,
				"lng":         h.Lng,
				"rating":      rating,
				"vibe":        "Recommended",
			})
		}
		return out
	}
	return []map[string]any{
		{"name": "Grand Riverside Hotel", "price": "₹150", "description": "Luxury stay with a great view", "lat": lat + 0.002, "lng": lng - 0.002, "rating": 4.8, "vibe": "Luxury"},
		{"name": "City Center Lodge", "price": "₹80", "description": "Authentic and cozy atmosphere", "lat": lat - 0.003, "lng": lng + 0.001, "rating": 4.2, "vibe": "Cozy"},
	}
}

// mealPools splits restaurant candidates into breakfast/lunch/dinner pools by
// cuisine-type hints, falling back to index windows for variety.
func mealPools(restaurants []RestaurantContext) (breakfasts, lunches, dinners []string) {
	for _, r := range restaurants {
		t := strings.ToLower(r.Type)
		switch {
		case strings.Contains(t, "breakfast") || strings.Contains(t, "cafe"):
			breakfasts = append(breakfasts, r.Name)
		case strings.Contains(t, "lunch") || strings.Contains(t, "restaurant"):
			lunches = append(lunches, r.Name)
		case strings.Contains(t, "dinner") || strings.Contains(t, "fine dining"):
			dinners = append(dinners, r.Name)
		}
	}
	names := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		names = append(names, r.Name)
	}
	if len(breakfasts) == 0 {
		breakfasts = window(names, 0, 5)
	}
	if len(lunches) == 0 {
		lunches = window(names, 5, 15)
	}
	if len(dinners) == 0 {
		dinners = window(names, 15, 25)
	}
	return breakfasts, lunches, dinners
}

func pickMeal(pool []string, idx int, def string) string {
	if len(pool) == 0 {
		return def
	}
	return pool[idx%len(pool)]
}

func mockAttraction(real []PlaceContext, generic []string, idx int, dest, prefix string, lat, lng float64) map[string]any {
	if idx < len(real) {
		p := real[idx]
		return map[string]any{
			"name":        p.Name,
			"lat":         p.Lat,
			"lng":         p.Lng,
			"description": "Famous local landmark.",
		}
	}
	name := fmt.Sprintf("%s %s %d", dest, prefix, idx+1)
	if idx < len(generic) {
		name = generic[idx]
	}
	return map[string]any{
		"name":        name,
		"lat":         lat + 0.005*float64(idx+1),
		"lng":         lng + 0.005,
		"description": "Famous local art and history.",
	}
}

func window(s []string, lo, hi int) []string {
	if lo >= len(s) {
		return nil
	}
	if hi > len(s) {
		hi = len(s)
	}
	return s[lo:hi]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func toAnySlice(days []map[string]any) []any {
	out := make([]any, len(days))
	for i, d := range days {
		out[i] = d
	}
	return out
}
