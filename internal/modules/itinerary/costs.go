package itinerary

import (
	"math"
	"strconv"
	"strings"
)

// CalculateCosts sums per-place costs into category totals and writes each
// day's derived "totalDayCost" back into the day map. The mutation is
// intentional: day totals are derived from content, not authored, and this is
// the single recomputation point for them.
//
// Rounding happens per bucket first and the grand total is then the sum of
// the rounded buckets; this ordering is load-bearing for reproducible totals.
func CalculateCosts(days []map[string]any, currencySymbol string) CostSummary {
	var summary CostSummary

	for _, day := range days {
		var dayItemSum float64
		for _, place := range getMapSlice(day, "places") {
			cost := parseCost(place["estimatedCost"], currencySymbol)

			switch strings.ToLower(getString(place, "category")) {
			case "food":
				summary.Food += cost
			case "hotel":
				summary.Stay += cost
			default:
				summary.Activities += cost
			}
			dayItemSum += cost
		}

		// Standardize: 15% transport budget per day.
		dayTransport := round2(dayItemSum * 0.15)
		summary.Transport += dayTransport
		day["totalDayCost"] = round2(dayItemSum + dayTransport)
	}

	summary.Food = round2(summary.Food)
	summary.Stay = round2(summary.Stay)
	summary.Activities = round2(summary.Activities)
	summary.Transport = round2(summary.Transport)
	summary.Total = round2(summary.Food + summary.Stay + summary.Activities + summary.Transport)

	return summary
}

// parseCost accepts numeric values directly; strings are stripped of the
// active currency symbol, a literal dollar sign, and thousands separators
// before parsing. Anything unparsable contributes zero.
func parseCost(raw any, currencySymbol string) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		clean := strings.ReplaceAll(v, currencySymbol, "")
		clean = strings.ReplaceAll(clean, "$", "")
		clean = strings.ReplaceAll(clean, ",", "")
		clean = strings.TrimSpace(clean)
		if clean == "" {
			return 0
		}
		f, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
