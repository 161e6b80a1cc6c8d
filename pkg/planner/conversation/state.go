package conversation

import (
	"fmt"
	"sort"
)

// Session state keys.
const (
	KeyActivities  = "activities"
	KeyDestination = "destination"
	KeyDates       = "dates"
	KeyAdults      = "adults"
	KeyChildren    = "children"
	KeyItinerary   = "itinerary"
)

// State accumulates answers across steps. It is owned exclusively by one
// Controller for its lifetime; flows that need independent state create
// their own controller.
type State map[string]interface{}

// Has reports whether key holds a value.
func (s State) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// GetString renders the value at key as a string, or "" when absent.
func (s State) GetString(key string) string {
	v, ok := s[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Missing returns the sorted subset of keys not yet present.
func (s State) Missing(keys []string) []string {
	var missing []string
	for _, key := range keys {
		if !s.Has(key) {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
