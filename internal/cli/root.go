package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root tripagent command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tripagent",
		Short: "Conversational travel itinerary planner",
		Long: `tripagent plans trips through a guided conversation with a language model.

Available subcommands:
  plan        Plan a trip interactively
  ideas       Generate trip ideas
  trips       List saved trips
  serve       Run the planner as an HTTP service
  version     Print version information

Examples:
  tripagent plan
  tripagent ideas --profile profiles/alexandra.json
  tripagent serve --addr :8085`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewPlanCmd())
	cmd.AddCommand(NewIdeasCmd())
	cmd.AddCommand(newTripsCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// newTripsCmd lists itineraries saved by earlier plan runs.
func newTripsCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List saved trips",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(configFile, false, false)
			if err != nil {
				return err
			}
			records, err := a.store.List()
			if err != nil {
				return err
			}
			renderSavedTrips(os.Stdout, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to configuration file")
	return cmd
}
