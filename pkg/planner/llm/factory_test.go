package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripagent-dev/tripagent/pkg/planner/config"
)

func TestNewClientFromConfig_OpenAI(t *testing.T) {
	apiKey := "test-api-key"
	cfg := &config.OpenAIConfig{
		BaseModelConfig: config.BaseModelConfig{ModelType: "OpenAI"},
		Model:           "gpt-4o",
		APIKey:          &apiKey,
	}

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "gpt-4o", client.ModelName())
	assert.True(t, client.SupportsTools())
}

func TestNewClientFromConfig_Anthropic(t *testing.T) {
	apiKey := "test-api-key"
	cfg := &config.AnthropicConfig{
		BaseModelConfig: config.BaseModelConfig{ModelType: "Anthropic"},
		Model:           "claude-sonnet-4-20250514",
		APIKey:          &apiKey,
	}

	client, err := NewClientFromConfig(cfg)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "claude-sonnet-4-20250514", client.ModelName())
	assert.True(t, client.SupportsTools())
}

func TestNewClientFromConfig_NilConfig(t *testing.T) {
	client, err := NewClientFromConfig(nil)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "config is required")
}

func TestNewClientFromConfig_UnsupportedType(t *testing.T) {
	cfg := &config.BaseModelConfig{ModelType: "UnsupportedModel"}

	client, err := NewClientFromConfig(cfg)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "unsupported model type")
}

func TestNewClientFromConfig_InvalidOpenAIConfig(t *testing.T) {
	// Pass wrong config type for OpenAI
	cfg := &config.BaseModelConfig{ModelType: "OpenAI"}

	client, err := NewClientFromConfig(cfg)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "invalid OpenAI config")
}
