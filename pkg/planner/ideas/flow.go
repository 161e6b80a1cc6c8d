// Package ideas generates candidate trip ideas from preferences and turns a
// selected idea into a finished itinerary by pre-seeding a fresh
// conversation controller.
package ideas

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/tripagent-dev/tripagent/pkg/planner/conversation"
	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
	"github.com/tripagent-dev/tripagent/pkg/planner/llm"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
	"github.com/tripagent-dev/tripagent/pkg/planner/structured"
)

// Default idea-list bounds.
const (
	DefaultIdeaCount     = 10
	DefaultIdeaMaxLength = 150
)

// SeedPrompt renders the idea generation prompt for a list of count ideas of
// at most maxLength characters each.
func SeedPrompt(count, maxLength int) string {
	return fmt.Sprintf("Generate %d single day outing ideas, each having %d characters or less. "+
		"Include number of adults and children. If children, make some events adult only and tailor those ideas accordingly. "+
		"Make the ideas as diverse as possible.", count, maxLength)
}

// DefaultSeedPrompt is SeedPrompt at the default bounds.
var DefaultSeedPrompt = SeedPrompt(DefaultIdeaCount, DefaultIdeaMaxLength)

// maxToolRounds bounds the execute-and-feed-back loop in ExpandIdea.
const maxToolRounds = 3

// ToolRunner is a callable the model may invoke during idea expansion.
type ToolRunner interface {
	Name() string
	Description() string
	Parameters() map[string]interface{}
	Run(ctx context.Context, args map[string]interface{}) (string, error)
}

// Flow drives the idea-suggestion path.
type Flow struct {
	gen           *structured.Generator
	tools         []ToolRunner
	newController func() *conversation.Controller
	ideaCount     int
	ideaMaxLength int
	log           logr.Logger
}

// NewFlow creates a Flow. newController must return a fresh controller with
// its own session state on every call. Non-positive idea bounds fall back to
// the defaults.
func NewFlow(gen *structured.Generator, tools []ToolRunner, newController func() *conversation.Controller, ideaCount, ideaMaxLength int, log logr.Logger) *Flow {
	if ideaCount <= 0 {
		ideaCount = DefaultIdeaCount
	}
	if ideaMaxLength <= 0 {
		ideaMaxLength = DefaultIdeaMaxLength
	}
	return &Flow{
		gen:           gen,
		tools:         tools,
		newController: newController,
		ideaCount:     ideaCount,
		ideaMaxLength: ideaMaxLength,
		log:           log,
	}
}

// ListIdeas generates a bounded ordered list of short trip ideas from the
// seed prompt and the serialized preferences.
func (f *Flow) ListIdeas(ctx context.Context, seedPrompt string, preferences map[string]interface{}) (*schema.PromptsList, error) {
	if seedPrompt == "" {
		seedPrompt = SeedPrompt(f.ideaCount, f.ideaMaxLength)
	}

	prompt := seedPrompt
	if len(preferences) > 0 {
		serialized, err := json.Marshal(preferences)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "cannot serialize preferences", err)
		}
		prompt = fmt.Sprintf("%s based on preferences %s", seedPrompt, serialized)
	}

	outcome, err := f.gen.Generate(ctx, prompt, schema.PromptsListDef, nil)
	if err != nil {
		return nil, err
	}

	result, ok := outcome.(*structured.StructuredResult)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeUnknownTool, "idea generation expected a direct answer", nil)
	}

	list := result.Value.(*schema.PromptsList)
	f.log.V(1).Info("ideas generated", "count", len(list.Prompts))
	return list, nil
}

// SelectIdea returns the idea at the 1-based index. An out-of-range index is
// a caller error; it is never clamped.
func SelectIdea(list *schema.PromptsList, oneBasedIndex int) (string, error) {
	if oneBasedIndex < 1 || oneBasedIndex > len(list.Prompts) {
		return "", apperrors.New(apperrors.ErrCodeIndexOutOfRange,
			fmt.Sprintf("idea %d does not exist (list has %d)", oneBasedIndex, len(list.Prompts)), nil)
	}
	return list.Prompts[oneBasedIndex-1].Text, nil
}

// ExpandIdea extracts concrete trip parameters from a free-text idea with
// tool use enabled. Tool invocations returned by the adapter are executed
// here and their results fed back, up to maxToolRounds rounds.
func (f *Flow) ExpandIdea(ctx context.Context, ideaText string) (*schema.ItineraryRequest, error) {
	defs := lo.Map(f.tools, func(t ToolRunner, _ int) llm.ToolDefinition {
		return llm.ToolDefinition{Name: t.Name(), Description: t.Description(), Parameters: t.Parameters()}
	})

	prompt := fmt.Sprintf("Extract concrete trip parameters from this trip idea: %s", ideaText)

	for round := 0; ; round++ {
		outcome, err := f.gen.Generate(ctx, prompt, schema.ItineraryRequestDef, defs)
		if err != nil {
			return nil, err
		}

		switch v := outcome.(type) {
		case *structured.StructuredResult:
			return v.Value.(*schema.ItineraryRequest), nil
		case *structured.ToolInvocation:
			if round == maxToolRounds {
				return nil, apperrors.New(apperrors.ErrCodeExternalService,
					fmt.Sprintf("model did not produce trip parameters after %d tool rounds", maxToolRounds), nil)
			}
			output, err := f.runTool(ctx, v)
			if err != nil {
				return nil, err
			}
			f.log.V(1).Info("tool executed", "tool", v.ToolName, "round", round)
			prompt = fmt.Sprintf("%s\n\nResult of %s: %s", prompt, v.ToolName, output)
		}
	}
}

func (f *Flow) runTool(ctx context.Context, invocation *structured.ToolInvocation) (string, error) {
	for _, tool := range f.tools {
		if tool.Name() == invocation.ToolName {
			output, err := tool.Run(ctx, invocation.Arguments)
			if err != nil {
				return "", apperrors.New(apperrors.ErrCodeExternalService,
					fmt.Sprintf("tool %q failed", invocation.ToolName), err)
			}
			return output, nil
		}
	}
	return "", apperrors.New(apperrors.ErrCodeUnknownTool,
		fmt.Sprintf("no runner for tool %q", invocation.ToolName), nil)
}

// SeedState flattens an ItineraryRequest into session state: destinations
// joined with ", ", activities as "<name> in <location>" joined with "; ",
// dates as "<start> to <end>".
func SeedState(req *schema.ItineraryRequest) conversation.State {
	destinations := lo.Map(req.Destinations, func(d schema.RequestDestination, _ int) string {
		return d.Location
	})
	activities := lo.FlatMap(req.Destinations, func(d schema.RequestDestination, _ int) []string {
		return lo.Map(d.Activities, func(a schema.RequestActivity, _ int) string {
			return fmt.Sprintf("%s in %s", a.Name, d.Location)
		})
	})

	return conversation.State{
		conversation.KeyActivities:  strings.Join(activities, "; "),
		conversation.KeyDestination: strings.Join(destinations, ", "),
		conversation.KeyDates:       fmt.Sprintf("%s to %s", req.StartDate, req.EndDate),
		conversation.KeyAdults:      req.NumberOfAdults,
		conversation.KeyChildren:    req.NumberOfChildren,
	}
}

// SeedAndFinish constructs a fresh controller, seeds its state from the
// request, and jumps straight to the terminal step.
func (f *Flow) SeedAndFinish(ctx context.Context, req *schema.ItineraryRequest) (*schema.Itinerary, error) {
	ctrl := f.newController()
	for key, value := range SeedState(req) {
		ctrl.State()[key] = value
	}

	if err := ctrl.JumpToLastStep(ctx); err != nil {
		return nil, err
	}
	return ctrl.Itinerary(), nil
}
