// Package conversation implements the step state machine that walks a user
// through trip planning and assembles the final itinerary.
package conversation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/tripagent-dev/tripagent/internal/metrics"
	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
	"github.com/tripagent-dev/tripagent/pkg/planner/structured"
	"github.com/tripagent-dev/tripagent/pkg/planner/styler"
)

// Prompter collects one line of free-text input from the user.
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// IOPrompter is a Prompter over a reader/writer pair.
type IOPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewIOPrompter creates a Prompter reading lines from in and writing
// prompts to out.
func NewIOPrompter(in io.Reader, out io.Writer) *IOPrompter {
	return &IOPrompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *IOPrompter) Ask(_ context.Context, prompt string) (string, error) {
	fmt.Fprintln(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// step is one named unit of the conversation: a prompt, the schema its
// answer must conform to, and the merge of that answer into session state.
type step struct {
	key        string
	keys       []string // state keys this step populates
	prompt     func(State) string
	definition *schema.Definition
	merge      func(State, interface{})
}

// requiredForItinerary are the state keys the terminal step needs.
var requiredForItinerary = []string{KeyActivities, KeyDestination, KeyDates, KeyAdults, KeyChildren}

// entryKeys are the step keys Start accepts.
var entryKeys = []string{KeyActivities, KeyDestination, KeyDates}

// Controller walks the fixed step order, prompting for missing state and
// assembling the itinerary at the terminal step.
type Controller struct {
	gen      *structured.Generator
	styler   styler.Styler
	prompter Prompter
	steps    []step
	state    State
	log      logr.Logger
}

// NewController creates a controller with fresh session state.
func NewController(gen *structured.Generator, style styler.Styler, prompter Prompter, log logr.Logger) *Controller {
	if style == nil {
		style = styler.Passthrough{}
	}
	return &Controller{
		gen:      gen,
		styler:   style,
		prompter: prompter,
		state:    State{},
		log:      log,
		steps:    planSteps(),
	}
}

func planSteps() []step {
	return []step{
		{
			key:  KeyActivities,
			keys: []string{KeyActivities},
			prompt: func(s State) string {
				if dest := s.GetString(KeyDestination); dest != "" {
					return fmt.Sprintf("What would you like to do in %s?", dest)
				}
				return "What activities would you like on this trip?"
			},
			definition: schema.ActivitiesDef,
			merge: func(s State, v interface{}) {
				s[KeyActivities] = v.(*schema.ActivitiesAnswer).Activities
			},
		},
		{
			key:  KeyDestination,
			keys: []string{KeyDestination},
			prompt: func(s State) string {
				if acts := s.GetString(KeyActivities); acts != "" {
					return fmt.Sprintf("Where would you like to go for %s?", acts)
				}
				return "Where would you like to go?"
			},
			definition: schema.DestinationDef,
			merge: func(s State, v interface{}) {
				s[KeyDestination] = v.(*schema.DestinationAnswer).Destination
			},
		},
		{
			key:  KeyDates,
			keys: []string{KeyDates},
			prompt: func(s State) string {
				if dest := s.GetString(KeyDestination); dest != "" {
					return fmt.Sprintf("When would you like to travel to %s?", dest)
				}
				return "When would you like to travel?"
			},
			definition: schema.DatesDef,
			merge: func(s State, v interface{}) {
				s[KeyDates] = v.(*schema.DatesAnswer).Dates
			},
		},
		{
			key:  "party",
			keys: []string{KeyAdults, KeyChildren},
			prompt: func(State) string {
				return "How many adults and how many children are travelling?"
			},
			definition: schema.PartyDef,
			merge: func(s State, v interface{}) {
				answer := v.(*schema.PartyAnswer)
				s[KeyAdults] = answer.Adults
				s[KeyChildren] = answer.Children
			},
		},
	}
}

// State returns the controller's session state. The idea-suggestion flow
// pre-seeds it directly before jumping to the last step.
func (c *Controller) State() State {
	return c.state
}

// Itinerary returns the assembled itinerary, or nil before the terminal
// step has run.
func (c *Controller) Itinerary() *schema.Itinerary {
	it, _ := c.state[KeyItinerary].(*schema.Itinerary)
	return it
}

// Start executes steps in order from the entry step through the terminal
// step. Steps whose state is already populated are skipped, never re-run.
// Any step failure aborts the whole call; completed fields stay in state.
func (c *Controller) Start(ctx context.Context, entryKey string) error {
	entry := -1
	for i, s := range c.steps {
		if s.key == entryKey {
			entry = i
			break
		}
	}
	if entry < 0 || !isEntryKey(entryKey) {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("unknown starting point %q (choose one of %s)", entryKey, strings.Join(entryKeys, ", ")), nil)
	}

	for _, s := range c.steps[entry:] {
		if err := c.runStep(ctx, s); err != nil {
			return err
		}
	}

	return c.runTerminal(ctx)
}

// JumpToLastStep skips directly to the terminal step using whatever state
// is already present.
func (c *Controller) JumpToLastStep(ctx context.Context) error {
	return c.runTerminal(ctx)
}

func (c *Controller) runStep(ctx context.Context, s step) error {
	// Forward-only progression: a completed step is never replayed.
	if len(c.state.Missing(s.keys)) == 0 {
		c.log.V(1).Info("skipping completed step", "step", s.key)
		return nil
	}

	prompt := c.styler.ConvertPrompt(ctx, s.prompt(c.state))
	answer, err := c.prompter.Ask(ctx, prompt)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeExternalService, "reading input failed", err)
	}

	extraction := fmt.Sprintf("Extract the requested trip details from this answer to %q: %s", s.prompt(c.state), answer)
	outcome, err := c.gen.Generate(ctx, extraction, s.definition, nil)
	if err != nil {
		// Failed step output is never merged.
		return err
	}

	result, ok := outcome.(*structured.StructuredResult)
	if !ok {
		return apperrors.New(apperrors.ErrCodeUnknownTool,
			fmt.Sprintf("step %q expected a direct answer", s.key), nil)
	}

	s.merge(c.state, result.Value)
	c.log.V(1).Info("step completed", "step", s.key)
	return nil
}

// runTerminal assembles the full itinerary from accumulated state.
func (c *Controller) runTerminal(ctx context.Context) error {
	if missing := c.state.Missing(requiredForItinerary); len(missing) > 0 {
		return apperrors.New(apperrors.ErrCodeMissingField,
			fmt.Sprintf("cannot assemble itinerary, missing: %s", strings.Join(missing, ", ")), nil)
	}

	prompt := fmt.Sprintf(
		"Create a complete travel itinerary.\n"+
			"Activities: %s\n"+
			"Destination: %s\n"+
			"Dates: %s\n"+
			"Number of adults: %s\n"+
			"Number of children: %s\n"+
			"Keep destinations and activities in the order given; they form the travel sequence. "+
			"Provide coordinates, an accommodation, activities and transportation for every destination.",
		c.state.GetString(KeyActivities),
		c.state.GetString(KeyDestination),
		c.state.GetString(KeyDates),
		c.state.GetString(KeyAdults),
		c.state.GetString(KeyChildren),
	)

	outcome, err := c.gen.Generate(ctx, prompt, schema.ItineraryDef, nil)
	if err != nil {
		return err
	}

	result, ok := outcome.(*structured.StructuredResult)
	if !ok {
		return apperrors.New(apperrors.ErrCodeUnknownTool, "itinerary assembly expected a direct answer", nil)
	}

	itinerary := result.Value.(*schema.Itinerary)
	if itinerary.TripID == "" {
		itinerary.TripID = uuid.NewString()
	}

	c.state[KeyItinerary] = itinerary
	metrics.ItinerariesCompleted.Inc()
	c.log.Info("itinerary assembled", "trip_id", itinerary.TripID, "destinations", len(itinerary.Destinations))
	return nil
}

func isEntryKey(key string) bool {
	for _, k := range entryKeys {
		if k == key {
			return true
		}
	}
	return false
}
