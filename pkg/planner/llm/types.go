package llm

import (
	"context"
)

// Client defines the interface for LLM clients. The planner issues one
// blocking call at a time; there is no streaming surface.
type Client interface {
	// Generate sends a conversation and receives a single response
	Generate(ctx context.Context, messages []Message, config *GenerateConfig) (*Response, error)

	// SupportsTools returns whether this client supports tool calling
	SupportsTools() bool

	// ModelName returns the name of the model being used
	ModelName() string
}

// Message is one turn of conversation input.
type Message struct {
	Role string `json:"role"` // "system", "user" or "assistant"
	Text string `json:"text"`
}

// GenerateConfig contains configuration for generation
type GenerateConfig struct {
	Temperature   *float64         `json:"temperature,omitempty"`
	MaxTokens     *int             `json:"max_tokens,omitempty"`
	TopP          *float64         `json:"top_p,omitempty"`
	TopK          *int             `json:"top_k,omitempty"`
	StopSequences []string         `json:"stop_sequences,omitempty"`
	Tools         []ToolDefinition `json:"tools,omitempty"`
}

// Response represents an LLM response
type Response struct {
	Text         string     `json:"text,omitempty"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	StopReason   string     `json:"stop_reason,omitempty"`
	FinishReason string     `json:"finish_reason,omitempty"`
	Usage        *Usage     `json:"usage,omitempty"`
}

// Usage represents token usage information
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ToolDefinition defines a tool that can be called by the LLM
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"` // JSON Schema
}

// ToolCall represents a tool call made by the LLM
type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// SystemMessage builds a system-role message.
func SystemMessage(text string) Message {
	return Message{Role: "system", Text: text}
}

// UserMessage builds a user-role message.
func UserMessage(text string) Message {
	return Message{Role: "user", Text: text}
}

// AssistantMessage builds an assistant-role message.
func AssistantMessage(text string) Message {
	return Message{Role: "assistant", Text: text}
}
