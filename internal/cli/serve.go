package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tripagent-dev/tripagent/internal/httpapi"
)

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	ConfigFile string
	Addr       string
	Verbose    bool
}

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cfg := &ServeConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planner as an HTTP service",
		Long: `Run the planner as an HTTP service.

Exposes POST /api/ideas for idea generation, POST /api/itinerary for
itinerary assembly from trip parameters, and GET /metrics for Prometheus
metrics.

Examples:
  tripagent serve
  tripagent serve --addr :9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.ConfigFile, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&cfg.Addr, "addr", "", "Listen address (default from configuration)")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")

	return cmd
}

func runServe(ctx context.Context, cfg *ServeConfig) error {
	a, err := buildApp(cfg.ConfigFile, cfg.Verbose, false)
	if err != nil {
		return err
	}

	addr := cfg.Addr
	if addr == "" {
		addr = a.cfg.ListenAddr
	}

	server := httpapi.NewServer(a.flow, a.log).Build(addr)

	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("tripagent listening on %s\n", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-sigChan:
		fmt.Println("\nShutting down...")
	case <-ctx.Done():
		fmt.Println("\nContext cancelled, shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown gracefully: %w", err)
	}
	return nil
}
