package itinerary

import (
	"context"
	"sort"
	"strings"

	"journey360/internal/geo"
)

const defaultNearbyRadiusM = 2000.0

// NearbyPlace is an itinerary place annotated for AR overlay rendering.
type NearbyPlace struct {
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DistanceM   float64 `json:"distanceM"`
	Bearing     float64 `json:"bearing"`
	Day         int     `json:"day,omitempty"`
}

// NearbyPlaces returns the trip's itinerary places within radiusM of the
// viewer, nearest first, with distance and initial bearing for each. Places
// without coordinates are skipped; repeated entries (the nightly hotel)
// appear once.
func (s *Service) NearbyPlaces(ctx context.Context, tripID, userID string, lat, lng, radiusM float64) ([]NearbyPlace, error) {
	if radiusM <= 0 {
		radiusM = defaultNearbyRadiusM
	}

	it, err := s.GetByTrip(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var nearby []NearbyPlace

	add := func(m map[string]any, dayNum int) {
		pLat := getNumber(m, "lat")
		pLng := getNumber(m, "lng")
		name := getString(m, "name")
		if name == "" || (pLat == 0 && pLng == 0) {
			return
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if seen[key] {
			return
		}

		dist := geo.HaversineMeters(lat, lng, pLat, pLng)
		if dist > radiusM {
			return
		}
		seen[key] = true
		nearby = append(nearby, NearbyPlace{
			Name:        name,
			Category:    getString(m, "category"),
			Description: getString(m, "description"),
			Lat:         pLat,
			Lng:         pLng,
			DistanceM:   dist,
			Bearing:     geo.Bearing(lat, lng, pLat, pLng),
			Day:         dayNum,
		})
	}

	for _, d := range it.Days {
		dayNum := int(getNumber(d, "dayNumber"))
		for _, p := range getMapSlice(d, "places") {
			add(p, dayNum)
		}
	}
	for _, h := range it.TopHotels {
		add(h, 0)
	}

	sort.Slice(nearby, func(i, j int) bool { return nearby[i].DistanceM < nearby[j].DistanceM })
	return nearby, nil
}
