package llm

// Default request parameters applied when the caller supplies none.
// The max-token budget matches the upstream service default the engine was
// tuned against.
const (
	DefaultMaxTokens = 1000
)

// RequestOptions is the provider-agnostic view of a request's parameters,
// decoded from the options map the ports.LLMClient contract uses.
type RequestOptions struct {
	// System is the system instruction, empty when none was supplied.
	System string

	// Temperature is nil when unset so providers can keep their default.
	// An explicit zero is passed through; extraction calls rely on it.
	Temperature *float64

	// MaxTokens bounds the response length.
	MaxTokens int

	// Model overrides the provider's configured model for this request.
	Model string
}

// ParseRequestOptions extracts the standard request parameters from an
// options map, applying defaults for anything missing or of the wrong type.
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		MaxTokens: DefaultMaxTokens,
		Model:     defaultModel,
	}

	if opts == nil {
		return options
	}

	if s, ok := opts["system"].(string); ok {
		options.System = s
	}

	if m, ok := opts["model"].(string); ok && m != "" {
		options.Model = m
	}

	switch v := opts["max_tokens"].(type) {
	case int:
		if v > 0 {
			options.MaxTokens = v
		}
	case float64:
		if v > 0 {
			options.MaxTokens = int(v)
		}
	}

	switch v := opts["temperature"].(type) {
	case float64:
		if v >= 0 && v <= 2 {
			options.Temperature = &v
		}
	case int:
		f := float64(v)
		if f >= 0 && f <= 2 {
			options.Temperature = &f
		}
	}

	return options
}

// TokenCounter estimates token counts when the provider response carries
// none. The ratio is a rough approximation for English text.
type TokenCounter struct {
	CharactersPerToken float64
}

// NewTokenCounter creates a TokenCounter with the default ratio.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{CharactersPerToken: 4.0}
}

// Count returns the actual count when positive, otherwise an estimate
// derived from the text length.
func (tc *TokenCounter) Count(actual int, text string) int {
	if actual > 0 {
		return actual
	}
	if len(text) == 0 {
		return 0
	}
	return int(float64(len(text)) / tc.CharactersPerToken)
}
