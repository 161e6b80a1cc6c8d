package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

// ListTool exposes ListEvents as a callable the model may invoke while
// expanding a trip idea, so ideas can be planned around existing events.
// It satisfies the ideas.ToolRunner interface.
type ListTool struct {
	service Service
}

// NewListTool creates a ListTool over the given service.
func NewListTool(service Service) *ListTool {
	return &ListTool{service: service}
}

func (t *ListTool) Name() string {
	return "list_events"
}

func (t *ListTool) Description() string {
	return "List the user's existing calendar events in a time window"
}

func (t *ListTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"calendar_id": map[string]interface{}{"type": "string", "description": "Calendar identifier, defaults to primary"},
			"start_time":  map[string]interface{}{"type": "string", "description": "Window start, ISO 8601"},
			"end_time":    map[string]interface{}{"type": "string", "description": "Window end, ISO 8601"},
			"timezone":    map[string]interface{}{"type": "string", "description": "IANA timezone name"},
		},
		"required":             []string{},
		"additionalProperties": false,
	}
}

func (t *ListTool) Run(ctx context.Context, args map[string]interface{}) (string, error) {
	calendarID := stringArg(args, "calendar_id", "primary")
	timezone := stringArg(args, "timezone", "UTC")

	window := Window{
		Start: time.Now(),
		End:   time.Now().Add(7 * 24 * time.Hour),
	}
	if v := stringArg(args, "start_time", ""); v != "" {
		parsed, err := parseEventTime(v, timezone)
		if err != nil {
			return "", apperrors.New(apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid start_time %q", v), err)
		}
		window.Start = parsed
	}
	if v := stringArg(args, "end_time", ""); v != "" {
		parsed, err := parseEventTime(v, timezone)
		if err != nil {
			return "", apperrors.New(apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid end_time %q", v), err)
		}
		window.End = parsed
	}

	events, err := t.service.ListEvents(ctx, calendarID, window, timezone)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return "No events found in that time span.", nil
	}

	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, fmt.Sprintf("%s to %s - %s", ev.Start, ev.End, ev.Summary))
	}
	return strings.Join(lines, "\n"), nil
}

func stringArg(args map[string]interface{}, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
