package llm

import (
	"log/slog"
	"os"

	"github.com/caliperhq/go-caliper/internal/ports"
)

// Environment variables consulted by FromEnv, in precedence order.
// Exactly one credential is needed; the first one present wins.
const (
	EnvGroqAPIKey      = "GROQ_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"

	// EnvModel overrides the selected provider's default model.
	EnvModel = "CALIPER_MODEL"
)

// FromEnv selects and constructs the reasoning backend from the process
// environment, once, at startup. Credential presence decides availability:
// with no credential set it returns the disabled client, which is not an
// error; it just routes every consumer to its deterministic path.
func FromEnv() ports.LLMClient {
	model := os.Getenv(EnvModel)

	type candidate struct {
		env      string
		provider string
		config   ClientConfig
	}

	candidates := []candidate{
		{EnvGroqAPIKey, "openai", ClientConfig{BaseURL: GroqBaseURL, Model: firstNonEmpty(model, GroqDefaultModel)}},
		{EnvOpenAIAPIKey, "openai", ClientConfig{Model: firstNonEmpty(model, OpenAIDefaultModel)}},
		{EnvAnthropicAPIKey, "anthropic", ClientConfig{Model: firstNonEmpty(model, AnthropicDefaultModel)}},
	}

	for _, c := range candidates {
		key := os.Getenv(c.env)
		if key == "" {
			continue
		}

		cfg := c.config
		cfg.APIKey = key
		cfg.Middleware = []Middleware{MetricsMiddleware(c.provider)}

		client, err := NewClient(c.provider, cfg)
		if err != nil {
			// A present-but-unusable credential still means no backend;
			// the engine runs on fallbacks either way.
			slog.Warn("reasoning backend disabled", "provider", c.provider, "error", err)
			return NewDisabledClient()
		}

		slog.Debug("reasoning backend enabled", "provider", c.provider, "model", client.GetModel())
		return client
	}

	return NewDisabledClient()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
