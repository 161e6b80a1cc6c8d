package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell/v2"
	"github.com/spf13/cobra"

	"github.com/tripagent-dev/tripagent/pkg/planner/conversation"
	"github.com/tripagent-dev/tripagent/pkg/planner/ideas"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
)

const (
	welcomeMessage = "Welcome to the Travel Planner! Please follow the prompts to plan your itinerary."
	exitMessage    = "Exiting Travel Planner. Thank you for using our service!"
	invalidOption  = "Invalid option. Please choose a valid starting point, type 'ideas' for suggested prompts, or type 'quit' to exit."
)

// PlanConfig holds configuration for the plan command
type PlanConfig struct {
	ConfigFile     string
	ProfilePath    string
	ExportCalendar bool
	Verbose        bool
}

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	cfg := &PlanConfig{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a trip interactively",
		Long: `Plan a trip through an interactive conversation.

Choose a starting point (activities, destination or dates) and answer the
prompts, or type 'ideas' to pick from generated suggestions. The finished
itinerary is saved locally and can be exported to an ICS calendar.

Examples:
  tripagent plan
  tripagent plan --export-calendar
  tripagent plan --profile profiles/alexandra.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.ConfigFile, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&cfg.ProfilePath, "profile", "", "Path to a preferences JSON file for idea generation")
	cmd.Flags().BoolVar(&cfg.ExportCalendar, "export-calendar", false, "Export the finished itinerary's activities to the ICS calendar")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func runPlan(ctx context.Context, cfg *PlanConfig) error {
	a, err := buildApp(cfg.ConfigFile, cfg.Verbose, true)
	if err != nil {
		return err
	}

	profilePath := cfg.ProfilePath
	if profilePath == "" {
		profilePath = a.cfg.ProfilePath
	}

	shell := ishell.New()
	shell.Println(a.styler.ConvertPrompt(ctx, welcomeMessage))
	shell.SetPrompt("Choose a starting point (activities, destination, dates), type 'ideas' to start from suggested prompts, or type 'quit' to exit: ")
	shell.NotFound(func(c *ishell.Context) {
		c.Println(invalidOption)
	})

	for _, key := range []string{conversation.KeyActivities, conversation.KeyDestination, conversation.KeyDates} {
		key := key
		shell.AddCmd(&ishell.Cmd{
			Name: key,
			Help: fmt.Sprintf("start planning from %s", key),
			Func: func(c *ishell.Context) {
				ctrl := conversation.NewController(a.gen, a.styler, &shellPrompter{c: c}, a.log)
				if err := ctrl.Start(ctx, key); err != nil {
					c.Println("An error occurred:", err)
					return
				}
				finishTrip(ctx, a, c, ctrl.Itinerary(), cfg.ExportCalendar, "Final Itinerary:")
				c.Stop()
			},
		})
	}

	shell.AddCmd(&ishell.Cmd{
		Name: "ideas",
		Help: "pick from generated trip ideas",
		Func: func(c *ishell.Context) {
			runIdeaMenu(ctx, a, c, profilePath, cfg.ExportCalendar)
		},
	})

	shell.AddCmd(&ishell.Cmd{
		Name: "quit",
		Help: "exit the planner",
		Func: func(c *ishell.Context) {
			c.Println(a.styler.ConvertPrompt(ctx, exitMessage))
			os.Exit(0)
		},
	})

	shell.Run()
	return nil
}

func runIdeaMenu(ctx context.Context, a *app, c *ishell.Context, profilePath string, exportCalendar bool) {
	var prefs map[string]interface{}
	if profilePath != "" {
		var err error
		prefs, err = a.profiles.Read(profilePath)
		if err != nil {
			// The planner is useless without the preferences it was asked
			// to honor.
			c.Println("An error occurred:", err)
			os.Exit(1)
		}
	}

	list, err := a.flow.ListIdeas(ctx, "", prefs)
	if err != nil {
		c.Println("An error occurred:", err)
		return
	}

	c.Println(a.styler.ConvertPrompt(ctx, "Here are some Travel Ideas:"))
	renderIdeas(os.Stdout, list)

	c.Print("Select a travel idea by number: ")
	choice, err := strconv.Atoi(strings.TrimSpace(c.ReadLine()))
	if err != nil {
		c.Println("An error occurred:", err)
		return
	}

	text, err := ideas.SelectIdea(list, choice)
	if err != nil {
		c.Println("An error occurred:", err)
		return
	}

	req, err := a.flow.ExpandIdea(ctx, text)
	if err != nil {
		c.Println("An error occurred:", err)
		return
	}

	itinerary, err := a.flow.SeedAndFinish(ctx, req)
	if err != nil {
		c.Println("An error occurred:", err)
		return
	}

	finishTrip(ctx, a, c, itinerary, exportCalendar, "Final Itinerary from Suggested Prompts:")
	c.Stop()
}

// finishTrip renders, persists and optionally exports the finished itinerary.
func finishTrip(ctx context.Context, a *app, c *ishell.Context, it *schema.Itinerary, exportCalendar bool, header string) {
	c.Println(a.styler.ConvertPrompt(ctx, header))
	renderItinerary(os.Stdout, it)

	tripID, err := a.store.Save(it)
	if err != nil {
		c.Println("An error occurred:", err)
		return
	}
	c.Println("Saved trip", tripID)

	if exportCalendar {
		count, err := a.calendar.ExportItinerary(ctx, it)
		if err != nil {
			c.Println("An error occurred:", err)
			return
		}
		c.Printf("Exported %d event(s) to %s\n", count, a.cfg.CalendarPath)
	}
}

// shellPrompter adapts an ishell context to the conversation Prompter.
type shellPrompter struct {
	c *ishell.Context
}

func (p *shellPrompter) Ask(_ context.Context, prompt string) (string, error) {
	p.c.Println(prompt)
	return strings.TrimSpace(p.c.ReadLine()), nil
}
