package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

// fakeService records ListEvents arguments and replays a fixed result.
type fakeService struct {
	events []Event
	window Window
}

func (s *fakeService) ListEvents(_ context.Context, _ string, window Window, _ string) ([]Event, error) {
	s.window = window
	return s.events, nil
}

func (s *fakeService) AddEvent(context.Context, Event) (string, error) {
	return "", nil
}

func (s *fakeService) UpdateOrCancelEvent(context.Context, string, string, *Event) (string, error) {
	return "", nil
}

func TestListTool_RendersEvents(t *testing.T) {
	svc := &fakeService{events: []Event{
		{Summary: "Dentist", Start: "2026-05-01T09:00", End: "2026-05-01T10:00"},
		{Summary: "Recital", Start: "2026-05-01T18:00", End: "2026-05-01T19:00"},
	}}
	tool := NewListTool(svc)

	out, err := tool.Run(context.Background(), map[string]interface{}{
		"start_time": "2026-05-01",
		"end_time":   "2026-05-02",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "2026-05-01T09:00 to 2026-05-01T10:00 - Dentist")
	assert.Contains(t, out, "Recital")

	assert.Equal(t, "2026-05-01", svc.window.Start.Format("2006-01-02"))
	assert.Equal(t, "2026-05-02", svc.window.End.Format("2006-01-02"))
}

func TestListTool_NoEvents(t *testing.T) {
	tool := NewListTool(&fakeService{})

	out, err := tool.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "No events found in that time span.", out)
}

func TestListTool_InvalidTimes(t *testing.T) {
	tool := NewListTool(&fakeService{})

	_, err := tool.Run(context.Background(), map[string]interface{}{"start_time": "next Tuesday"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.Code(err))
	assert.Contains(t, err.Error(), `"next Tuesday"`)

	_, err = tool.Run(context.Background(), map[string]interface{}{"end_time": "whenever"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.Code(err))
	assert.Contains(t, err.Error(), `"whenever"`)
}
