package llm

import (
	"fmt"

	"github.com/tripagent-dev/tripagent/pkg/planner/config"
	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

// NewClientFromConfig creates an LLM client from the model configuration
func NewClientFromConfig(cfg config.ModelConfig) (Client, error) {
	if cfg == nil {
		return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "model config is required", nil)
	}

	switch cfg.Type() {
	case "OpenAI":
		openaiCfg, ok := cfg.(*config.OpenAIConfig)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "invalid OpenAI config", nil)
		}
		return NewOpenAIClient(openaiCfg)

	case "Anthropic":
		anthropicCfg, ok := cfg.(*config.AnthropicConfig)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "invalid Anthropic config", nil)
		}
		return NewAnthropicClient(anthropicCfg)

	default:
		return nil, apperrors.New(apperrors.ErrCodeAgentConfig,
			fmt.Sprintf("unsupported model type: %s", cfg.Type()), nil)
	}
}
