package club

import "fmt"

// Club is the static club reference table, joined for display only.
type Club struct {
	ID   int64
	Name string
	URL  string
}

// FallbackName is shown when a club id is absent from the reference table.
func FallbackName(clubID int64) string {
	return fmt.Sprintf("Equipo %d", clubID)
}

// Find returns the first club with the given id.
func Find(clubs []Club, clubID int64) (Club, bool) {
	for _, c := range clubs {
		if c.ID == clubID {
			return c, true
		}
	}
	return Club{}, false
}
