// Package styler rewrites user-facing messages in a configured persona
// voice. Styling is presentation only; it never alters control flow or data.
package styler

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/tripagent-dev/tripagent/pkg/planner/llm"
)

// Styler converts a prompt for display.
type Styler interface {
	ConvertPrompt(ctx context.Context, text string) string
}

// Passthrough returns messages unchanged.
type Passthrough struct{}

func (Passthrough) ConvertPrompt(_ context.Context, text string) string {
	return text
}

// Persona rewrites messages in a persona voice with one model round.
// Failures degrade to the original text so styling can never break a flow.
type Persona struct {
	client  llm.Client
	persona string
	log     logr.Logger
}

// NewPersona creates a persona styler.
func NewPersona(client llm.Client, persona string, log logr.Logger) *Persona {
	return &Persona{client: client, persona: persona, log: log}
}

func (p *Persona) ConvertPrompt(ctx context.Context, text string) string {
	prompt := fmt.Sprintf("Rewrite the following message in %s. Keep the meaning intact and reply with only the rewritten message.\n\n%s", p.persona, text)

	resp, err := p.client.Generate(ctx, []llm.Message{llm.UserMessage(prompt)}, nil)
	if err != nil {
		p.log.V(1).Info("persona conversion failed, using original text", "error", err)
		return text
	}
	if resp.Text == "" {
		return text
	}
	return resp.Text
}

// FromConfig returns a Persona styler when enabled is true and a persona is
// set, and a Passthrough otherwise.
func FromConfig(client llm.Client, persona string, enabled bool, log logr.Logger) Styler {
	if !enabled || persona == "" {
		return Passthrough{}
	}
	return NewPersona(client, persona, log)
}
