package cli

import (
	"context"
	"time"

	"github.com/briandowns/spinner"

	"github.com/tripagent-dev/tripagent/pkg/planner/llm"
)

// spinnerClient shows a terminal spinner while the wrapped client is
// generating. It keeps the blocking model call honest to interactive users.
type spinnerClient struct {
	inner llm.Client
	spin  *spinner.Spinner
}

func newSpinnerClient(inner llm.Client) *spinnerClient {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " thinking..."
	return &spinnerClient{inner: inner, spin: s}
}

func (c *spinnerClient) Generate(ctx context.Context, messages []llm.Message, cfg *llm.GenerateConfig) (*llm.Response, error) {
	c.spin.Start()
	defer c.spin.Stop()
	return c.inner.Generate(ctx, messages, cfg)
}

func (c *spinnerClient) SupportsTools() bool { return c.inner.SupportsTools() }
func (c *spinnerClient) ModelName() string   { return c.inner.ModelName() }
