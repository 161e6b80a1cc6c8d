package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// IdeasConfig holds configuration for the ideas command
type IdeasConfig struct {
	ConfigFile  string
	ProfilePath string
	SeedPrompt  string
	Verbose     bool
}

// NewIdeasCmd creates the ideas command
func NewIdeasCmd() *cobra.Command {
	cfg := &IdeasConfig{}

	cmd := &cobra.Command{
		Use:   "ideas",
		Short: "Generate trip ideas",
		Long: `Generate a list of short trip ideas and print them.

Preferences from a profile JSON file are folded into the generation prompt
when provided.

Examples:
  tripagent ideas
  tripagent ideas --profile profiles/alexandra.json
  tripagent ideas --seed "Generate 5 weekend hiking trips"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIdeas(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.ConfigFile, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&cfg.ProfilePath, "profile", "", "Path to a preferences JSON file")
	cmd.Flags().StringVar(&cfg.SeedPrompt, "seed", "", "Override the idea generation prompt")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func runIdeas(ctx context.Context, cfg *IdeasConfig) error {
	a, err := buildApp(cfg.ConfigFile, cfg.Verbose, true)
	if err != nil {
		return err
	}

	profilePath := cfg.ProfilePath
	if profilePath == "" {
		profilePath = a.cfg.ProfilePath
	}

	var prefs map[string]interface{}
	if profilePath != "" {
		prefs, err = a.profiles.Read(profilePath)
		if err != nil {
			return err
		}
	}

	list, err := a.flow.ListIdeas(ctx, cfg.SeedPrompt, prefs)
	if err != nil {
		return err
	}

	renderIdeas(os.Stdout, list)
	return nil
}
