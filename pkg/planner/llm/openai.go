package llm

import (
	"context"
	"encoding/json"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/tripagent-dev/tripagent/pkg/planner/config"
	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

// OpenAIClient implements the Client interface for OpenAI
type OpenAIClient struct {
	client openai.Client
	config *config.OpenAIConfig
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(cfg *config.OpenAIConfig) (*OpenAIClient, error) {
	if cfg == nil {
		return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "OpenAI config is required", nil)
	}

	opts := []option.RequestOption{}

	// Set API key if provided
	if cfg.APIKey != nil && *cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(*cfg.APIKey))
	}

	// Set base URL if provided
	if cfg.BaseURL != nil && *cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(*cfg.BaseURL))
	}

	client := openai.NewClient(opts...)

	return &OpenAIClient{
		client: client,
		config: cfg,
	}, nil
}

// Generate sends a conversation and receives a single response
func (c *OpenAIClient) Generate(ctx context.Context, messages []Message, genConfig *GenerateConfig) (*Response, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.config.Model),
		Messages: c.convertMessages(messages),
	}

	// Apply generation config
	if genConfig != nil {
		if genConfig.Temperature != nil {
			params.Temperature = openai.Float(*genConfig.Temperature)
		} else if c.config.Temperature != nil {
			params.Temperature = openai.Float(*c.config.Temperature)
		}

		if genConfig.MaxTokens != nil {
			params.MaxTokens = openai.Int(int64(*genConfig.MaxTokens))
		} else if c.config.MaxTokens != nil {
			params.MaxTokens = openai.Int(int64(*c.config.MaxTokens))
		}

		if genConfig.TopP != nil {
			params.TopP = openai.Float(*genConfig.TopP)
		} else if c.config.TopP != nil {
			params.TopP = openai.Float(*c.config.TopP)
		}

		if len(genConfig.StopSequences) > 0 {
			params.Stop = openai.ChatCompletionNewParamsStopUnion{
				OfStringArray: genConfig.StopSequences,
			}
		}

		// Add tools if provided
		if len(genConfig.Tools) > 0 {
			params.Tools = c.convertTools(genConfig.Tools)
		}
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "OpenAI API call failed", err)
	}
	if len(completion.Choices) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "OpenAI returned no choices", nil)
	}

	return c.convertResponse(completion), nil
}

// SupportsTools returns whether this client supports tool calling
func (c *OpenAIClient) SupportsTools() bool {
	return true
}

// ModelName returns the name of the model being used
func (c *OpenAIClient) ModelName() string {
	return c.config.Model
}

func (c *OpenAIClient) convertMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	var result []openai.ChatCompletionMessageParamUnion

	for _, msg := range messages {
		switch msg.Role {
		case "user":
			result = append(result, openai.UserMessage(msg.Text))
		case "assistant":
			result = append(result, openai.AssistantMessage(msg.Text))
		case "system":
			result = append(result, openai.SystemMessage(msg.Text))
		}
	}

	return result
}

func (c *OpenAIClient) convertTools(tools []ToolDefinition) []openai.ChatCompletionToolUnionParam {
	var result []openai.ChatCompletionToolUnionParam

	for _, tool := range tools {
		fn := openai.FunctionDefinitionParam{
			Name:        tool.Name,
			Description: openai.String(tool.Description),
		}
		if tool.Parameters != nil {
			fn.Parameters = openai.FunctionParameters(tool.Parameters)
		}
		result = append(result, openai.ChatCompletionFunctionTool(fn))
	}

	return result
}

func (c *OpenAIClient) convertResponse(completion *openai.ChatCompletion) *Response {
	choice := completion.Choices[0]

	response := &Response{
		Text:         choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: &Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:  int(completion.Usage.TotalTokens),
		},
	}

	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		json.Unmarshal([]byte(tc.Function.Arguments), &args)

		response.ToolCalls = append(response.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	return response
}
