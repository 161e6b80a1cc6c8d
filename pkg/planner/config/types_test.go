package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_UnmarshalJSON_OpenAI(t *testing.T) {
	data := `{
		"model": {"type": "OpenAI", "model": "gpt-4o", "temperature": 0.2},
		"persona": "The voice of Socrates, the Greek philosopher",
		"idea_count": 10
	}`

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(data), &cfg))

	require.NotNil(t, cfg.Model)
	assert.Equal(t, "OpenAI", cfg.Model.Type())

	openaiCfg, ok := cfg.Model.(*OpenAIConfig)
	require.True(t, ok)
	assert.Equal(t, "gpt-4o", openaiCfg.Model)
	require.NotNil(t, openaiCfg.Temperature)
	assert.Equal(t, 0.2, *openaiCfg.Temperature)
	assert.Equal(t, 10, cfg.IdeaCount)
}

func TestConfig_UnmarshalJSON_Anthropic(t *testing.T) {
	data := `{"model": {"type": "Anthropic", "model": "claude-sonnet-4-20250514", "max_tokens": 2048}}`

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(data), &cfg))

	anthropicCfg, ok := cfg.Model.(*AnthropicConfig)
	require.True(t, ok)
	assert.Equal(t, "claude-sonnet-4-20250514", anthropicCfg.Model)
	require.NotNil(t, anthropicCfg.MaxTokens)
	assert.Equal(t, 2048, *anthropicCfg.MaxTokens)
}

func TestConfig_UnmarshalJSON_UnsupportedType(t *testing.T) {
	var cfg Config
	err := json.Unmarshal([]byte(`{"model": {"type": "Cohere", "model": "command"}}`), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported model type")
}

func TestConfig_UnmarshalJSON_NoModel(t *testing.T) {
	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(`{"persona": "a calm narrator"}`), &cfg))
	assert.Nil(t, cfg.Model)
	assert.Equal(t, "a calm narrator", cfg.Persona)
}

func TestModelConfig_Validate(t *testing.T) {
	missing := &OpenAIConfig{BaseModelConfig: BaseModelConfig{ModelType: "OpenAI"}}
	assert.Error(t, missing.Validate())

	valid := &AnthropicConfig{BaseModelConfig: BaseModelConfig{ModelType: "Anthropic"}, Model: "claude-sonnet-4-20250514"}
	assert.NoError(t, valid.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tripagent.json")
	content := `{
		"model": {"type": "OpenAI", "model": "gpt-4o"},
		"persona": "a travel guide",
		"idea_count": 5
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "OpenAI", cfg.Model.Type())
	assert.Equal(t, "a travel guide", cfg.Persona)
	assert.Equal(t, 5, cfg.IdeaCount)
	assert.Equal(t, DefaultIdeaMaxLength, cfg.IdeaMaxLength)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "OpenAI", cfg.Model.Type())
	assert.Equal(t, DefaultIdeaCount, cfg.IdeaCount)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
