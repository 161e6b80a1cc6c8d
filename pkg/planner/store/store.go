// Package store persists finalized itineraries in a local SQLite database.
package store

import (
	"encoding/json"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
)

// Record is one saved itinerary row. The full itinerary is kept as JSON;
// the flat columns exist for listing.
type Record struct {
	ID        string `gorm:"primaryKey"`
	TripName  string
	StartDate string
	EndDate   string
	Adults    int
	Children  int
	Payload   string
	CreatedAt time.Time
}

// Store wraps the database handle.
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the SQLite database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeStore, "cannot open itinerary store", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeStore, "cannot migrate itinerary store", err)
	}
	return &Store{db: db}, nil
}

// Save persists the itinerary and returns its trip id.
func (s *Store) Save(it *schema.Itinerary) (string, error) {
	if it.TripID == "" {
		it.TripID = uuid.NewString()
	}

	payload, err := json.Marshal(it)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeStore, "cannot encode itinerary", err)
	}

	record := Record{
		ID:        it.TripID,
		TripName:  it.TripName,
		StartDate: it.StartDate,
		EndDate:   it.EndDate,
		Adults:    it.NumberOfAdults,
		Children:  it.NumberOfChildren,
		Payload:   string(payload),
		CreatedAt: time.Now(),
	}

	if err := s.db.Save(&record).Error; err != nil {
		return "", apperrors.New(apperrors.ErrCodeStore, "cannot save itinerary", err)
	}
	return it.TripID, nil
}

// Get loads the itinerary saved under tripID.
func (s *Store) Get(tripID string) (*schema.Itinerary, error) {
	var record Record
	if err := s.db.First(&record, "id = ?", tripID).Error; err != nil {
		return nil, apperrors.New(apperrors.ErrCodeStore, "itinerary not found: "+tripID, err)
	}

	it := &schema.Itinerary{}
	if err := json.Unmarshal([]byte(record.Payload), it); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeStore, "stored itinerary is corrupt: "+tripID, err)
	}
	return it, nil
}

// List returns saved itinerary rows, newest first.
func (s *Store) List() ([]Record, error) {
	var records []Record
	if err := s.db.Order("created_at desc").Find(&records).Error; err != nil {
		return nil, apperrors.New(apperrors.ErrCodeStore, "cannot list itineraries", err)
	}
	return records, nil
}
