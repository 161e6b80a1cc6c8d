// Package cli implements the tripagent command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/tripagent-dev/tripagent/pkg/planner/calendar"
	"github.com/tripagent-dev/tripagent/pkg/planner/config"
	"github.com/tripagent-dev/tripagent/pkg/planner/conversation"
	"github.com/tripagent-dev/tripagent/pkg/planner/ideas"
	"github.com/tripagent-dev/tripagent/pkg/planner/llm"
	"github.com/tripagent-dev/tripagent/pkg/planner/profile"
	"github.com/tripagent-dev/tripagent/pkg/planner/store"
	"github.com/tripagent-dev/tripagent/pkg/planner/structured"
	"github.com/tripagent-dev/tripagent/pkg/planner/styler"
)

// app bundles the wired collaborators every command needs.
type app struct {
	cfg      *config.Config
	client   llm.Client
	gen      *structured.Generator
	styler   styler.Styler
	flow     *ideas.Flow
	profiles *profile.Store
	calendar *calendar.FileService
	store    *store.Store
	log      logr.Logger
}

// buildApp loads configuration and wires the planner stack. verbose raises
// the log verbosity; showSpinner wraps model calls in a terminal spinner.
func buildApp(configPath string, verbose, showSpinner bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := newLogger(verbose)

	client, err := llm.NewClientFromConfig(cfg.Model)
	if err != nil {
		return nil, err
	}
	if showSpinner {
		client = newSpinnerClient(client)
	}

	gen := structured.NewGenerator(client, log)
	style := styler.FromConfig(client, cfg.Persona, cfg.ConvertPrompts, log)

	resolver, err := calendar.NewDefaultResolver()
	if err != nil {
		return nil, err
	}
	cal := calendar.NewFileService(cfg.CalendarPath, resolver, log)

	db, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	tools := []ideas.ToolRunner{calendar.NewListTool(cal)}
	factory := func() *conversation.Controller {
		return conversation.NewController(gen, style, conversation.NewIOPrompter(os.Stdin, os.Stdout), log)
	}
	flow := ideas.NewFlow(gen, tools, factory, cfg.IdeaCount, cfg.IdeaMaxLength, log)

	return &app{
		cfg:      cfg,
		client:   client,
		gen:      gen,
		styler:   style,
		flow:     flow,
		profiles: profile.NewStore(log),
		calendar: cal,
		store:    db,
		log:      log,
	}, nil
}

func newLogger(verbose bool) logr.Logger {
	level := 0
	if verbose {
		level = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: level})
}
