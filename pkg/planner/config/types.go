package config

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

// Config is the planner configuration loaded at process start.
type Config struct {
	Model          ModelConfig `json:"model"`
	Persona        string      `json:"persona,omitempty"`
	ConvertPrompts bool        `json:"convert_prompts,omitempty"`
	ProfilePath    string      `json:"profile_path,omitempty"`
	CalendarPath   string      `json:"calendar_path,omitempty"`
	StorePath      string      `json:"store_path,omitempty"`
	IdeaCount      int         `json:"idea_count,omitempty"`
	IdeaMaxLength  int         `json:"idea_max_length,omitempty"`
	ListenAddr     string      `json:"listen_addr,omitempty"`
}

// ModelConfig is an interface for different model configurations
type ModelConfig interface {
	Type() string
	Validate() error
}

// BaseModelConfig contains common fields for all models
type BaseModelConfig struct {
	ModelType string `json:"type"`
}

func (b *BaseModelConfig) Type() string {
	return b.ModelType
}

func (b *BaseModelConfig) Validate() error {
	return nil
}

// OpenAIConfig represents OpenAI model configuration
type OpenAIConfig struct {
	BaseModelConfig
	Model       string   `json:"model"`
	BaseURL     *string  `json:"base_url,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	APIKey      *string  `json:"api_key,omitempty"`
}

func (o *OpenAIConfig) Validate() error {
	if o.Model == "" {
		return apperrors.New(apperrors.ErrCodeAgentConfig, "model name is required", nil)
	}
	return nil
}

// AnthropicConfig represents Anthropic model configuration
type AnthropicConfig struct {
	BaseModelConfig
	Model       string   `json:"model"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	TopK        *int     `json:"top_k,omitempty"`
	APIKey      *string  `json:"api_key,omitempty"`
}

func (a *AnthropicConfig) Validate() error {
	if a.Model == "" {
		return apperrors.New(apperrors.ErrCodeAgentConfig, "model name is required", nil)
	}
	return nil
}

// UnmarshalJSON implements custom unmarshaling for Config to handle the
// model discriminator
func (c *Config) UnmarshalJSON(data []byte) error {
	type Alias Config
	aux := &struct {
		Model json.RawMessage `json:"model"`
		*Alias
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.Model) == 0 {
		return nil
	}

	// Parse model type first
	var modelType struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(aux.Model, &modelType); err != nil {
		return fmt.Errorf("failed to parse model type: %w", err)
	}

	// Unmarshal into appropriate model config type
	switch modelType.Type {
	case "OpenAI":
		var openai OpenAIConfig
		if err := json.Unmarshal(aux.Model, &openai); err != nil {
			return err
		}
		c.Model = &openai
	case "Anthropic":
		var anthropic AnthropicConfig
		if err := json.Unmarshal(aux.Model, &anthropic); err != nil {
			return err
		}
		c.Model = &anthropic
	default:
		return fmt.Errorf("unsupported model type: %s", modelType.Type)
	}

	return nil
}
