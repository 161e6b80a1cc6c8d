package calendar

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/ringsaturn/tzf"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
)

const (
	productID = "-//tripagent//itinerary//EN"

	// Layouts accepted for event times, most specific first.
	layoutDateTime = "2006-01-02T15:04"
	layoutDate     = "2006-01-02"
)

// TimezoneResolver maps coordinates to an IANA timezone name.
type TimezoneResolver interface {
	GetTimezoneName(lng, lat float64) string
}

// FileService implements Service against a local ICS file. It exists so a
// finalized itinerary can be pushed somewhere a real calendar app can
// import, without any third-party API credentials.
type FileService struct {
	path string
	tz   TimezoneResolver
	log  logr.Logger
}

// NewFileService creates a FileService writing to path. The tzf finder is
// optional; without it events fall back to UTC.
func NewFileService(path string, tz TimezoneResolver, log logr.Logger) *FileService {
	return &FileService{path: path, tz: tz, log: log}
}

// NewDefaultResolver builds the embedded-data timezone finder.
func NewDefaultResolver() (TimezoneResolver, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeCalendar, "cannot initialize timezone finder", err)
	}
	return finder, nil
}

func (s *FileService) ListEvents(_ context.Context, _ string, window Window, timezone string) ([]Event, error) {
	cal, err := s.load()
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if timezone != "" {
		if parsed, err := time.LoadLocation(timezone); err == nil {
			loc = parsed
		}
	}

	var events []Event
	for _, ev := range cal.Events() {
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}
		if !window.Start.IsZero() && start.Before(window.Start) {
			continue
		}
		if !window.End.IsZero() && start.After(window.End) {
			continue
		}

		entry := Event{
			ID:            ev.Id(),
			Summary:       propertyValue(ev, ics.ComponentPropertySummary),
			Location:      propertyValue(ev, ics.ComponentPropertyLocation),
			Description:   propertyValue(ev, ics.ComponentPropertyDescription),
			Start:         start.In(loc).Format(layoutDateTime),
			StartTimezone: loc.String(),
			EndTimezone:   loc.String(),
		}
		if end, err := ev.GetEndAt(); err == nil {
			entry.End = end.In(loc).Format(layoutDateTime)
		}
		events = append(events, entry)
	}

	return events, nil
}

func (s *FileService) AddEvent(_ context.Context, ev Event) (string, error) {
	cal, err := s.load()
	if err != nil {
		return "", err
	}

	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}

	start, err := parseEventTime(ev.Start, ev.StartTimezone)
	if err != nil {
		return "", err
	}
	end := start.Add(time.Hour)
	if ev.End != "" {
		if parsed, err := parseEventTime(ev.End, ev.EndTimezone); err == nil {
			end = parsed
		}
	}

	entry := cal.AddEvent(id)
	entry.SetCreatedTime(time.Now())
	entry.SetStartAt(start)
	entry.SetEndAt(end)
	entry.SetSummary(ev.Summary)
	if ev.Location != "" {
		entry.SetLocation(ev.Location)
	}
	if ev.Description != "" {
		entry.SetDescription(ev.Description)
	}

	if err := s.save(cal); err != nil {
		return "", err
	}

	s.log.V(1).Info("event added", "id", id, "summary", ev.Summary)
	return fmt.Sprintf("Event created: %s", id), nil
}

func (s *FileService) UpdateOrCancelEvent(ctx context.Context, calendarID, eventID string, update *Event) (string, error) {
	cal, err := s.load()
	if err != nil {
		return "", err
	}

	found := false
	kept := ics.NewCalendar()
	kept.SetProductId(productID)
	for _, ev := range cal.Events() {
		if ev.Id() == eventID {
			found = true
			continue
		}
		kept.AddVEvent(ev)
	}
	if !found {
		return "", apperrors.New(apperrors.ErrCodeCalendar, fmt.Sprintf("event %q not found", eventID), nil)
	}

	if err := s.save(kept); err != nil {
		return "", err
	}

	if update == nil {
		return "Event deleted.", nil
	}

	update.ID = eventID
	if _, err := s.AddEvent(ctx, *update); err != nil {
		return "", err
	}
	return fmt.Sprintf("Event updated: %s", eventID), nil
}

// ExportItinerary pushes one event per activity of the itinerary. Event
// timezones are resolved from the destination coordinates.
func (s *FileService) ExportItinerary(ctx context.Context, it *schema.Itinerary) (int, error) {
	count := 0
	for _, dest := range it.Destinations {
		timezone := "UTC"
		if s.tz != nil {
			if name := s.tz.GetTimezoneName(dest.Longitude, dest.Latitude); name != "" {
				timezone = name
			}
		}

		for _, act := range dest.Activities {
			start := strings.TrimSpace(act.Date)
			if act.Time != "" {
				start = fmt.Sprintf("%sT%s", act.Date, act.Time)
			}

			_, err := s.AddEvent(ctx, Event{
				Summary:       act.Name,
				Location:      act.Location,
				Description:   act.Notes,
				Start:         start,
				StartTimezone: timezone,
				EndTimezone:   timezone,
			})
			if err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (s *FileService) load() (*ics.Calendar, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			cal := ics.NewCalendar()
			cal.SetProductId(productID)
			return cal, nil
		}
		return nil, apperrors.New(apperrors.ErrCodeCalendar, "cannot read calendar file", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(string(data)))
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeCalendar, "cannot parse calendar file", err)
	}
	return cal, nil
}

func (s *FileService) save(cal *ics.Calendar) error {
	if err := os.WriteFile(s.path, []byte(cal.Serialize()), 0o644); err != nil {
		return apperrors.New(apperrors.ErrCodeCalendar, "cannot write calendar file", err)
	}
	return nil
}

func parseEventTime(value, timezone string) (time.Time, error) {
	loc := time.UTC
	if timezone != "" {
		parsed, err := time.LoadLocation(timezone)
		if err != nil {
			return time.Time{}, apperrors.New(apperrors.ErrCodeCalendar, fmt.Sprintf("unknown timezone %q", timezone), err)
		}
		loc = parsed
	}

	for _, layout := range []string{layoutDateTime, layoutDate, time.RFC3339} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.New(apperrors.ErrCodeCalendar, fmt.Sprintf("cannot parse event time %q", value), nil)
}

func propertyValue(ev *ics.VEvent, prop ics.ComponentProperty) string {
	p := ev.GetProperty(prop)
	if p == nil {
		return ""
	}
	return p.Value
}
