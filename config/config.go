package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries every runtime setting of the service. Values come from the
// environment (optionally a .env file), with sane local defaults.
type Config struct {
	Port         int    `mapstructure:"port"`
	BaseURL      string `mapstructure:"base_url"`
	DatabasePath string `mapstructure:"database_path"`

	// AIProvider selects the text-generation backend: "openai", "gemini" or
	// "" for none. With no provider every AI-delegated path uses its
	// deterministic fallback.
	AIProvider    string `mapstructure:"ai_provider"`
	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`
	OpenAIModel   string `mapstructure:"openai_model"`
	GeminiAPIKey  string `mapstructure:"gemini_api_key"`
	GeminiModel   string `mapstructure:"gemini_model"`

	LogJSON bool `mapstructure:"log_json"`
	Debug   bool `mapstructure:"debug"`
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// No .env file is fine; real deployments set the environment directly.
		_ = err
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 3000)
	v.SetDefault("base_url", "")
	v.SetDefault("database_path", "hackokai.db")
	v.SetDefault("ai_provider", "")
	v.SetDefault("openai_model", "gpt-3.5-turbo")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("log_json", false)
	v.SetDefault("debug", false)

	for _, key := range []string{
		"port", "base_url", "database_path",
		"ai_provider", "openai_api_key", "openai_base_url", "openai_model",
		"gemini_api_key", "gemini_model",
		"log_json", "debug",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Credential presence implies a provider unless one was chosen explicitly.
	if cfg.AIProvider == "" {
		switch {
		case cfg.OpenAIAPIKey != "":
			cfg.AIProvider = "openai"
		case cfg.GeminiAPIKey != "":
			cfg.AIProvider = "gemini"
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}
