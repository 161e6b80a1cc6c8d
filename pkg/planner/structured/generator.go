// Package structured wraps the model backend's "generate a value conforming
// to a schema, optionally invoking a tool" capability and normalizes its
// output into a tagged union of StructuredResult and ToolInvocation.
package structured

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/tripagent-dev/tripagent/internal/metrics"
	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
	"github.com/tripagent-dev/tripagent/pkg/planner/llm"
	"github.com/tripagent-dev/tripagent/pkg/planner/schema"
)

const systemPrompt = "You are a helpful assistant"

// Outcome is the tagged result of one generation round: either a
// StructuredResult or a ToolInvocation, never both.
type Outcome interface {
	outcome()
}

// StructuredResult is a direct, schema-validated answer from the model.
type StructuredResult struct {
	Schema string
	Value  interface{}
}

func (*StructuredResult) outcome() {}

// ToolInvocation is a model-requested tool call. The adapter never executes
// it; the caller decides whether to run the tool and issue another round.
type ToolInvocation struct {
	ToolName  string
	Arguments map[string]interface{}
}

func (*ToolInvocation) outcome() {}

// Generator issues single reasoning rounds against an LLM client. It
// performs no retries; retry policy belongs to the caller.
type Generator struct {
	client llm.Client
	log    logr.Logger
}

// NewGenerator creates a Generator on top of the given client.
func NewGenerator(client llm.Client, log logr.Logger) *Generator {
	return &Generator{client: client, log: log}
}

// ModelName reports the backing model.
func (g *Generator) ModelName() string {
	return g.client.ModelName()
}

// Generate runs one reasoning round. The target schema is offered to the
// model as a function alongside the available tools, mirroring the
// function-calling protocol: a call to the target function or a plain JSON
// answer becomes a StructuredResult, a call to any other available tool is
// returned unexecuted as a ToolInvocation, and an unrecognized tool name is
// an UNKNOWN_TOOL error.
func (g *Generator) Generate(ctx context.Context, prompt string, target *schema.Definition, tools []llm.ToolDefinition) (Outcome, error) {
	defs := make([]llm.ToolDefinition, 0, len(tools)+1)
	defs = append(defs, tools...)
	defs = append(defs, llm.ToolDefinition{
		Name:        target.Name,
		Description: target.Description,
		Parameters:  target.Parameters,
	})

	messages := []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage(prompt),
	}

	resp, err := g.client.Generate(ctx, messages, &llm.GenerateConfig{Tools: defs})
	if err != nil {
		metrics.ModelCalls.WithLabelValues(target.Name, metrics.ResultError).Inc()
		return nil, err
	}

	outcome, err := g.normalize(resp, target, tools)
	if err != nil {
		metrics.ModelCalls.WithLabelValues(target.Name, metrics.ResultError).Inc()
		return nil, err
	}
	if _, isTool := outcome.(*ToolInvocation); isTool {
		metrics.ModelCalls.WithLabelValues(target.Name, metrics.ResultTool).Inc()
	} else {
		metrics.ModelCalls.WithLabelValues(target.Name, metrics.ResultOK).Inc()
	}
	return outcome, nil
}

func (g *Generator) normalize(resp *llm.Response, target *schema.Definition, tools []llm.ToolDefinition) (Outcome, error) {
	if len(resp.ToolCalls) > 0 {
		call := resp.ToolCalls[0]

		// A call to the target function is the structured answer itself.
		if call.Name == target.Name {
			value, err := target.ValidateMap(call.Arguments)
			if err != nil {
				return nil, err
			}
			return &StructuredResult{Schema: target.Name, Value: value}, nil
		}

		for _, tool := range tools {
			if tool.Name == call.Name {
				g.log.V(1).Info("model requested tool", "tool", call.Name)
				return &ToolInvocation{ToolName: call.Name, Arguments: call.Arguments}, nil
			}
		}

		return nil, apperrors.New(apperrors.ErrCodeUnknownTool,
			fmt.Sprintf("model requested unrecognized tool %q", call.Name), nil)
	}

	// Direct answers must be JSON conforming to the target schema.
	value, err := target.Validate([]byte(resp.Text))
	if err != nil {
		return nil, err
	}
	return &StructuredResult{Schema: target.Name, Value: value}, nil
}
