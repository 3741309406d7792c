package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter, mock.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
		Timeout: 20 * time.Second,
	}
}

// envBindings lists the FRACTIZ_* variables read by ConfigFromEnv.
func envBindings(c *Config) map[string]*string {
	return map[string]*string{
		"FRACTIZ_LLM_PROVIDER":       &c.Provider,
		"FRACTIZ_ANTHROPIC_API_KEY":  &c.Anthropic.APIKey,
		"FRACTIZ_ANTHROPIC_MODEL":    &c.Anthropic.Model,
		"FRACTIZ_OPENAI_API_KEY":     &c.OpenAI.APIKey,
		"FRACTIZ_OPENAI_MODEL":       &c.OpenAI.Model,
		"FRACTIZ_OPENAI_BASE_URL":    &c.OpenAI.BaseURL,
		"FRACTIZ_GEMINI_API_KEY":     &c.Gemini.APIKey,
		"FRACTIZ_GEMINI_MODEL":       &c.Gemini.Model,
		"FRACTIZ_OPENROUTER_API_KEY": &c.OpenRouter.APIKey,
		"FRACTIZ_OPENROUTER_MODEL":   &c.OpenRouter.Model,
	}
}

// ConfigFromEnv overlays FRACTIZ_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, dst := range envBindings(&cfg) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv("FRACTIZ_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// Configured reports whether FRACTIZ_LLM_PROVIDER was set explicitly.
func Configured() bool {
	return os.Getenv("FRACTIZ_LLM_PROVIDER") != ""
}

// DiscoverConfig falls back to the vendors' standard key variables, in
// the order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "mock":
		return nil
	case "anthropic":
		key, env = c.Anthropic.APIKey, "FRACTIZ_ANTHROPIC_API_KEY"
	case "openai":
		key, env = c.OpenAI.APIKey, "FRACTIZ_OPENAI_API_KEY"
	case "gemini":
		key, env = c.Gemini.APIKey, "FRACTIZ_GEMINI_API_KEY"
	case "openrouter":
		key, env = c.OpenRouter.APIKey, "FRACTIZ_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
