package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	return s
}

func sampleItinerary(tripID string) *schema.Itinerary {
	return &schema.Itinerary{
		TripID:    tripID,
		UserID:    "user-1",
		TripName:  "Roman Holiday",
		StartDate: "2026-05-01",
		EndDate:   "2026-05-03",
		Destinations: []schema.Destination{
			{Location: "Rome", Latitude: 41.9, Longitude: 12.5, ArrivalDate: "2026-05-01", DepartureDate: "2026-05-03"},
		},
		Notes:            "spring trip",
		NumberOfAdults:   2,
		NumberOfChildren: 0,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Save(sampleItinerary("trip-1"))
	require.NoError(t, err)
	assert.Equal(t, "trip-1", id)

	loaded, err := s.Get("trip-1")
	require.NoError(t, err)
	assert.Equal(t, sampleItinerary("trip-1"), loaded)
}

func TestSave_AssignsID(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Save(sampleItinerary(""))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.Get(id)
	assert.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get("missing")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Save(sampleItinerary("trip-1"))
	require.NoError(t, err)
	_, err = s.Save(sampleItinerary("trip-2"))
	require.NoError(t, err)

	records, err := s.List()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
