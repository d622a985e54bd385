// Package llm implements the reasoning backend adapter: a unified client
// over OpenAI-compatible (including Groq) and Anthropic completion APIs,
// with optional middleware for cross-cutting concerns.
//
// The adapter is deliberately thin. One Complete call is one synchronous
// round-trip with no retry policy and no timeout beyond the transport
// default; resilience belongs to the callers, all of which degrade to
// deterministic fallbacks on any failure here.
package llm

import (
	"context"
	"fmt"
	"time"
)

// CoreLLM is the minimal surface a provider must implement. Middleware
// wraps any conforming implementation.
type CoreLLM interface {
	// DoRequest sends a prompt to the provider and returns the response
	// text along with input and output token counts.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the configured model name.
	GetModel() string
}

// Middleware wraps a CoreLLM to add cross-cutting behavior such as
// metrics collection. Middleware are applied in the order given, the first
// being outermost.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds the settings for constructing a backend client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Model selects the provider model. Empty uses the provider default.
	Model string

	// BaseURL overrides the provider's default endpoint. The Groq
	// backend is the OpenAI provider pointed at Groq's endpoint.
	BaseURL string

	// Timeout bounds individual requests at the transport level.
	// Zero leaves the transport default in place.
	Timeout time.Duration

	// Middleware is applied around the provider, first entry outermost.
	Middleware []Middleware
}

// ProviderFactory creates a CoreLLM from configuration. Provider
// implementations register themselves at init time.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory registers a provider under the given name so
// NewClient can construct it. Custom providers may register here too.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}

// Client wraps a provider with the ports.LLMClient contract. A Client
// constructed through NewClient is always available; use
// NewDisabledClient for the credential-less case.
type Client struct {
	core CoreLLM
}

// NewClient constructs a backend client for the named provider.
// It fails when the API key is missing or the provider is unknown; it never
// probes the network, so a successfully constructed client reports
// available even when the remote service later refuses requests.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", providerType, err)
	}

	// Reverse order so the first middleware ends up outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	return &Client{core: core}, nil
}

// Available always reports true for a constructed client; availability is
// decided by construction, not probed per call.
func (c *Client) Available() bool { return true }

// Complete sends a prompt to the backend and returns the response text.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.core.DoRequest(ctx, prompt, options)
	return response, err
}

// GetModel returns the model identifier of the underlying provider.
func (c *Client) GetModel() string { return c.core.GetModel() }
