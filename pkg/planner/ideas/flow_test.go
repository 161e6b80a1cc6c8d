package ideas

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripagent-dev/tripagent/pkg/planner/conversation"
	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
	"github.com/tripagent-dev/tripagent/pkg/planner/llm"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
	"github.com/tripagent-dev/tripagent/pkg/planner/structured"
)

// scriptedClient replays responses in order and records prompts.
type scriptedClient struct {
	responses []*llm.Response
	prompts   []string
}

func (c *scriptedClient) Generate(_ context.Context, messages []llm.Message, _ *llm.GenerateConfig) (*llm.Response, error) {
	c.prompts = append(c.prompts, messages[len(messages)-1].Text)
	if len(c.responses) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "script exhausted", nil)
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func (c *scriptedClient) SupportsTools() bool { return true }
func (c *scriptedClient) ModelName() string   { return "scripted" }

type fakeTool struct {
	name   string
	output string
	err    error
	calls  int
}

func (t *fakeTool) Name() string                       { return t.name }
func (t *fakeTool) Description() string                { return "fake tool" }
func (t *fakeTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }
func (t *fakeTool) Run(context.Context, map[string]interface{}) (string, error) {
	t.calls++
	return t.output, t.err
}

func newFlow(client llm.Client, tools []ToolRunner) *Flow {
	return newBoundedFlow(client, tools, 0, 0)
}

func newBoundedFlow(client llm.Client, tools []ToolRunner, ideaCount, ideaMaxLength int) *Flow {
	gen := structured.NewGenerator(client, logr.Discard())
	factory := func() *conversation.Controller {
		prompter := conversation.NewIOPrompter(strings.NewReader(""), &strings.Builder{})
		return conversation.NewController(gen, nil, prompter, logr.Discard())
	}
	return NewFlow(gen, tools, factory, ideaCount, ideaMaxLength, logr.Discard())
}

func sampleRequest() *schema.ItineraryRequest {
	return &schema.ItineraryRequest{
		StartDate: "2026-05-01",
		EndDate:   "2026-05-02",
		Destinations: []schema.RequestDestination{
			{Location: "Rome", Activities: []schema.RequestActivity{{Name: "Colosseum tour"}}},
			{Location: "Florence", Activities: []schema.RequestActivity{{Name: "Uffizi visit"}}},
		},
		NumberOfAdults:   2,
		NumberOfChildren: 0,
	}
}

func TestSeedState_Flattening(t *testing.T) {
	state := SeedState(sampleRequest())

	assert.Equal(t, "Rome, Florence", state[conversation.KeyDestination])
	assert.Equal(t, "Colosseum tour in Rome; Uffizi visit in Florence", state[conversation.KeyActivities])
	assert.Equal(t, "2026-05-01 to 2026-05-02", state[conversation.KeyDates])
	assert.Equal(t, 2, state[conversation.KeyAdults])
	assert.Equal(t, 0, state[conversation.KeyChildren])
}

func tenIdeas() *schema.PromptsList {
	list := &schema.PromptsList{CreatedAt: "2026-04-17"}
	for _, text := range []string{
		"Wine tasting in Tuscany for two adults",
		"Family day at the Roman zoo",
		"Sunset sailing on the Amalfi coast",
		"Street food crawl in Naples",
		"Cycling the Appian Way",
		"Opera night in Verona, adults only",
		"Pompeii day trip with kids",
		"Cooking class in Bologna",
		"Hot springs afternoon in Saturnia",
		"Market morning in Palermo",
	} {
		list.Prompts = append(list.Prompts, schema.Prompt{Text: text})
	}
	return list
}

func TestSelectIdea(t *testing.T) {
	list := tenIdeas()

	first, err := SelectIdea(list, 1)
	require.NoError(t, err)
	assert.Equal(t, "Wine tasting in Tuscany for two adults", first)

	last, err := SelectIdea(list, 10)
	require.NoError(t, err)
	assert.Equal(t, "Market morning in Palermo", last)
}

func TestSelectIdea_OutOfRange(t *testing.T) {
	list := tenIdeas()

	for _, index := range []int{0, -1, 11} {
		_, err := SelectIdea(list, index)
		require.Error(t, err, "index %d must be rejected", index)
		assert.Equal(t, apperrors.ErrCodeIndexOutOfRange, apperrors.Code(err))
	}
}

func TestListIdeas_IncludesPreferences(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{Text: `{"prompts": [{"text": "Wine tasting in Tuscany"}], "created_at": "2026-04-17"}`},
	}}
	flow := newFlow(client, nil)

	list, err := flow.ListIdeas(context.Background(), "", map[string]interface{}{"interests": []string{"cuisine"}})
	require.NoError(t, err)
	require.Len(t, list.Prompts, 1)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "single day outing ideas")
	assert.Contains(t, client.prompts[0], "based on preferences")
	assert.Contains(t, client.prompts[0], "cuisine")
}

func TestListIdeas_ConfiguredBounds(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{Text: `{"prompts": [{"text": "Wine tasting in Tuscany"}], "created_at": "2026-04-17"}`},
	}}
	flow := newBoundedFlow(client, nil, 5, 80)

	_, err := flow.ListIdeas(context.Background(), "", nil)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Generate 5 single day outing ideas")
	assert.Contains(t, client.prompts[0], "80 characters or less")
}

func TestListIdeas_DefaultBounds(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{Text: `{"prompts": [{"text": "Wine tasting in Tuscany"}], "created_at": "2026-04-17"}`},
	}}
	flow := newFlow(client, nil)

	_, err := flow.ListIdeas(context.Background(), "", nil)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Equal(t, DefaultSeedPrompt, client.prompts[0])
}

func TestExpandIdea_DirectAnswer(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{
		{Text: `{"start_date": "2026-05-01", "end_date": "2026-05-02", "destinations": [{"location": "Rome", "activities": [{"name": "Colosseum tour"}]}], "number_of_adults": 2, "number_of_children": 0}`},
	}}
	flow := newFlow(client, nil)

	req, err := flow.ExpandIdea(context.Background(), "A Roman weekend for two")
	require.NoError(t, err)
	assert.Equal(t, "Rome", req.Destinations[0].Location)
	assert.Equal(t, 2, req.NumberOfAdults)
}

func TestExpandIdea_ToolRoundTrip(t *testing.T) {
	tool := &fakeTool{name: "list_events", output: "2026-05-01T09:00 to 2026-05-01T10:00 - Dentist"}
	client := &scriptedClient{responses: []*llm.Response{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "list_events", Arguments: map[string]interface{}{"max_results": 10}}}},
		{Text: `{"start_date": "2026-05-02", "end_date": "2026-05-02", "destinations": [{"location": "Rome", "activities": [{"name": "Colosseum tour"}]}], "number_of_adults": 2, "number_of_children": 0}`},
	}}
	flow := newFlow(client, []ToolRunner{tool})

	req, err := flow.ExpandIdea(context.Background(), "A Roman day that avoids my appointments")
	require.NoError(t, err)
	assert.Equal(t, 1, tool.calls)
	assert.Equal(t, "2026-05-02", req.StartDate)

	// The tool result was fed back into the follow-up prompt.
	require.Len(t, client.prompts, 2)
	assert.Contains(t, client.prompts[1], "Result of list_events")
	assert.Contains(t, client.prompts[1], "Dentist")
}

func TestExpandIdea_ToolLoopBounded(t *testing.T) {
	tool := &fakeTool{name: "list_events", output: "nothing"}
	toolCall := &llm.Response{ToolCalls: []llm.ToolCall{{Name: "list_events"}}}
	client := &scriptedClient{responses: []*llm.Response{toolCall, toolCall, toolCall, toolCall, toolCall}}
	flow := newFlow(client, []ToolRunner{tool})

	_, err := flow.ExpandIdea(context.Background(), "idea")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeExternalService, apperrors.Code(err))
	assert.Contains(t, err.Error(), "after 3 tool rounds")

	// Three tool rounds were executed, each fed back into one more model
	// call; the exhausting invocation itself never runs the tool.
	assert.Equal(t, 3, tool.calls)
	assert.Len(t, client.prompts, 4)
}

func TestSeedAndFinish(t *testing.T) {
	itineraryJSON := `{
		"trip_id": "trip-1", "user_id": "u1", "trip_name": "Rome & Florence",
		"start_date": "2026-05-01", "end_date": "2026-05-02",
		"destinations": [], "notes": "", "number_of_adults": 2, "number_of_children": 0
	}`
	client := &scriptedClient{responses: []*llm.Response{{Text: itineraryJSON}}}
	flow := newFlow(client, nil)

	it, err := flow.SeedAndFinish(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Rome & Florence", it.TripName)

	// The terminal prompt carries the flattened seed values.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Rome, Florence")
	assert.Contains(t, client.prompts[0], "Colosseum tour in Rome; Uffizi visit in Florence")
}

func TestSeedAndFinish_PropagatesFailure(t *testing.T) {
	client := &scriptedClient{responses: []*llm.Response{{Text: `not json`}}}
	flow := newFlow(client, nil)

	_, err := flow.SeedAndFinish(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSchemaParse, apperrors.Code(err))
}
