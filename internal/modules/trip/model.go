// README: Trip aggregate and destination sanitizing.
package trip

import (
	"strings"
	"time"
)

const StatusCreated = "CREATED"

// Trip is a user's planning request. Immutable once created except for status.
type Trip struct {
	ID          string    `json:"trip_id"`
	UserID      string    `json:"user_id"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Days        int       `json:"days"`
	Budget      float64   `json:"budget"`
	BudgetLevel string    `json:"budget_level"`
	Interests   []string  `json:"interests"`
	TravelPace  string    `json:"travel_pace"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// misspellings maps frequent destination misspellings to their correct form,
// applied as exact substring replacement.
var misspellings = [][2]string{
	{"Kolkatta", "Kolkata"},
	{"Banglore", "Bengaluru"},
	{"kerela", "Kerala"},
	{"Kerela", "Kerala"},
}

// SanitizeDestination normalizes destination spelling against the
// known-misspelling table.
func SanitizeDestination(dest string) string {
	for _, m := range misspellings {
		dest = strings.ReplaceAll(dest, m[0], m[1])
	}
	return dest
}
