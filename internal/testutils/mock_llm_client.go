// Package testutils provides test doubles shared by the engine's test
// suites, most importantly a scripted reasoning backend.
package testutils

import (
	"context"
	"strings"
	"sync"

	"github.com/caliperhq/go-caliper/internal/ports"
)

// MockLLMClient implements ports.LLMClient with scripted responses for
// deterministic tests. It can simulate unavailability, transport failures
// and malformed responses, which is how the fallback paths are exercised
// without a network.
type MockLLMClient struct {
	mu sync.Mutex

	// model is the mock model identifier.
	model string
	// available is what Available reports.
	available bool
	// responses maps prompt substrings to canned responses, checked in
	// insertion order.
	responses []MockResponse
	// err, when set, fails every Complete call.
	err error
	// prompts records every prompt received, for assertions.
	prompts []string
}

// MockResponse binds a prompt substring to the text returned for it.
type MockResponse struct {
	// Pattern is matched as a substring of the prompt (system + user text).
	Pattern string
	// Response is returned verbatim for matching prompts.
	Response string
}

// NewMockLLMClient creates an available mock with no scripted responses.
// Unmatched prompts return an empty string, which the consumers treat as
// an unparsable response.
func NewMockLLMClient(model string) *MockLLMClient {
	return &MockLLMClient{model: model, available: true}
}

// NewUnavailableLLMClient creates a mock that reports unavailable and
// fails every call with ports.ErrBackendUnavailable.
func NewUnavailableLLMClient() *MockLLMClient {
	return &MockLLMClient{available: false}
}

// AddResponse scripts a response for prompts containing the pattern.
func (m *MockLLMClient) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, r)
}

// FailWith makes every subsequent Complete call return err.
func (m *MockLLMClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Prompts returns a copy of every prompt the mock has received.
func (m *MockLLMClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Available implements ports.LLMClient.
func (m *MockLLMClient) Available() bool { return m.available }

// Complete implements ports.LLMClient with scripted behavior.
func (m *MockLLMClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	if !m.available {
		return "", ports.NewBackendError(m.model, "complete", ports.ErrBackendUnavailable)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)

	if m.err != nil {
		return "", m.err
	}

	full := prompt
	if system, ok := options["system"].(string); ok {
		full = system + "\n" + prompt
	}

	for _, r := range m.responses {
		if r.Pattern == "" || strings.Contains(full, r.Pattern) {
			return r.Response, nil
		}
	}

	return "", nil
}

// GetModel implements ports.LLMClient.
func (m *MockLLMClient) GetModel() string { return m.model }
