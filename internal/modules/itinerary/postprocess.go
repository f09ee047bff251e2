package itinerary

import (
	"fmt"
	"strings"
)

// filterDuplicatePlaces removes places that repeat across the whole
// itinerary. Exact name matches (case-insensitive, trimmed) are always
// duplicates; for longer names a substring containment check catches fuzzy
// repeats like "City Palace" vs "City Palace Museum Tour". Hotels are exempt
// since the same hotel legitimately recurs every evening.
//
// If filtering would leave a day with fewer than three places the day is
// kept unfiltered; a thin day is worse than a repeated one.
func filterDuplicatePlaces(days []map[string]any, fuzzyMinLen int) {
	seen := make(map[string]bool)

	for _, day := range days {
		places := getMapSlice(day, "places")
		kept := make([]map[string]any, 0, len(places))

		for _, place := range places {
			name := strings.ToLower(strings.TrimSpace(getString(place, "name")))
			category := strings.ToLower(getString(place, "category"))

			if category == "hotel" {
				kept = append(kept, place)
				continue
			}
			if name == "" || seen[name] || fuzzyMatch(seen, name, fuzzyMinLen) {
				continue
			}
			seen[name] = true
			kept = append(kept, place)
		}

		if len(kept) < 3 {
			continue
		}
		setPlaces(day, kept)
	}
}

func fuzzyMatch(seen map[string]bool, name string, minLen int) bool {
	if len(name) <= minLen {
		return false
	}
	for prior := range seen {
		if len(prior) <= minLen {
			continue
		}
		if strings.Contains(prior, name) || strings.Contains(name, prior) {
			return true
		}
	}
	return false
}

func setPlaces(day map[string]any, places []map[string]any) {
	anyPlaces := make([]any, len(places))
	for i, p := range places {
		anyPlaces[i] = p
	}
	day["places"] = anyPlaces
}

// ensureDayCount backfills missing days with a zero-cost exploration
// placeholder so the itinerary always covers the requested duration. Extra
// days are never truncated; an overshoot is a bonus, not a defect.
func ensureDayCount(days []map[string]any, want int, refLat, refLng float64) []map[string]any {
	for day := len(days) + 1; day <= want; day++ {
		days = append(days, map[string]any{
			"dayNumber":   day,
			"weatherNote": "Explore the local area at your own pace.",
			"places": []any{
				map[string]any{
					"name":          fmt.Sprintf("Area Exploration (Day %d)", day),
					"category":      "attraction",
					"description":   "Free time to wander local neighborhoods, markets, and cafes at your own pace.",
					"estimatedCost": 0,
					"timeSlot":      "morning",
					"duration":      "flexible",
					"lat":           refLat,
					"lng":           refLng,
				},
			},
			"totalDayCost": 0,
		})
	}
	return days
}
