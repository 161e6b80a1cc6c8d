package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/tripagent-dev/tripagent/pkg/planner/errors"
)

const (
	DefaultModel         = "gpt-4o"
	DefaultIdeaCount     = 10
	DefaultIdeaMaxLength = 150
	DefaultListenAddr    = ":8085"
)

// Load reads the planner configuration. Settings are resolved in order:
// explicit config file, tripagent.{json,yaml} in the working directory or
// $HOME/.tripagent, then TRIPAGENT_* environment variables, then defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("tripagent")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("idea_count", DefaultIdeaCount)
	v.SetDefault("idea_max_length", DefaultIdeaMaxLength)
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("store_path", "tripagent.db")
	v.SetDefault("calendar_path", "tripagent.ics")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tripagent")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.tripagent")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "cannot read config file "+path, err)
		}
		// A missing default config file is fine; a broken one is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "cannot read configuration", err)
		}
	}

	// Round-trip through JSON so the model discriminator in
	// Config.UnmarshalJSON applies to viper's merged settings.
	raw, err := json.Marshal(v.AllSettings())
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "cannot encode settings", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeAgentConfig, "invalid configuration", err)
	}

	if cfg.Model == nil {
		cfg.Model = defaultModelConfig()
	}
	if err := cfg.Model.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultModelConfig() ModelConfig {
	cfg := &OpenAIConfig{
		BaseModelConfig: BaseModelConfig{ModelType: "OpenAI"},
		Model:           DefaultModel,
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.APIKey = &key
	}
	return cfg
}
