package llm

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tripagent-dev/tripagent/pkg/planner/config"
	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

const defaultAnthropicMaxTokens = 4096

// AnthropicClient implements the Client interface for Anthropic
type AnthropicClient struct {
	client anthropic.Client
	config *config.AnthropicConfig
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(cfg *config.AnthropicConfig) (*AnthropicClient, error) {
	if cfg == nil {
		return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "Anthropic config is required", nil)
	}

	opts := []option.RequestOption{}

	// Set API key if provided
	if cfg.APIKey != nil && *cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(*cfg.APIKey))
	}

	client := anthropic.NewClient(opts...)

	return &AnthropicClient{
		client: client,
		config: cfg,
	}, nil
}

// Generate sends a conversation and receives a single response
func (c *AnthropicClient) Generate(ctx context.Context, messages []Message, genConfig *GenerateConfig) (*Response, error) {
	anthropicMessages, system := c.convertMessages(messages)

	params := anthropic.MessageNewParams{
		Model:    anthropic.Model(c.config.Model),
		Messages: anthropicMessages,
	}

	// Max tokens is required by Anthropic
	maxTokens := defaultAnthropicMaxTokens
	if genConfig != nil && genConfig.MaxTokens != nil {
		maxTokens = *genConfig.MaxTokens
	} else if c.config.MaxTokens != nil {
		maxTokens = *c.config.MaxTokens
	}
	params.MaxTokens = int64(maxTokens)

	// Apply generation config
	if genConfig != nil {
		if genConfig.Temperature != nil {
			params.Temperature = anthropic.Float(*genConfig.Temperature)
		} else if c.config.Temperature != nil {
			params.Temperature = anthropic.Float(*c.config.Temperature)
		}

		if genConfig.TopP != nil {
			params.TopP = anthropic.Float(*genConfig.TopP)
		} else if c.config.TopP != nil {
			params.TopP = anthropic.Float(*c.config.TopP)
		}

		if genConfig.TopK != nil {
			params.TopK = anthropic.Int(int64(*genConfig.TopK))
		} else if c.config.TopK != nil {
			params.TopK = anthropic.Int(int64(*c.config.TopK))
		}

		if len(genConfig.StopSequences) > 0 {
			params.StopSequences = genConfig.StopSequences
		}

		// Add tools if provided
		if len(genConfig.Tools) > 0 {
			params.Tools = c.convertTools(genConfig.Tools)
		}
	}

	// Add system message if present
	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "Anthropic API call failed", err)
	}

	return c.convertResponse(message), nil
}

// SupportsTools returns whether this client supports tool calling
func (c *AnthropicClient) SupportsTools() bool {
	return true
}

// ModelName returns the name of the model being used
func (c *AnthropicClient) ModelName() string {
	return c.config.Model
}

func (c *AnthropicClient) convertMessages(messages []Message) ([]anthropic.MessageParam, string) {
	var result []anthropic.MessageParam
	var system string

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			// Anthropic carries the system prompt outside the message list
			if system != "" {
				system += "\n"
			}
			system += msg.Text
		case "user":
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Text)))
		case "assistant":
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Text)))
		}
	}

	return result, system
}

func (c *AnthropicClient) convertTools(tools []ToolDefinition) []anthropic.ToolUnionParam {
	var result []anthropic.ToolUnionParam

	for _, tool := range tools {
		schema := anthropic.ToolInputSchemaParam{}
		if props, ok := tool.Parameters["properties"].(map[string]interface{}); ok {
			schema.Properties = props
		}

		result = append(result, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name,
				Description: anthropic.String(tool.Description),
				InputSchema: schema,
			},
		})
	}

	return result
}

func (c *AnthropicClient) convertResponse(message *anthropic.Message) *Response {
	response := &Response{
		StopReason: string(message.StopReason),
		Usage: &Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
			TotalTokens:  int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}

	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			response.Text += variant.Text
		case anthropic.ToolUseBlock:
			var args map[string]interface{}
			json.Unmarshal(variant.Input, &args)

			response.ToolCalls = append(response.ToolCalls, ToolCall{
				ID:        variant.ID,
				Name:      variant.Name,
				Arguments: args,
			})
		}
	}

	return response
}
