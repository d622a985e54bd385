package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		got := ParseRequestOptions(nil, "base-model")
		assert.Equal(t, "base-model", got.Model)
		assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
		assert.Empty(t, got.System)
		assert.Nil(t, got.Temperature)
	})

	t.Run("explicit zero temperature is preserved", func(t *testing.T) {
		got := ParseRequestOptions(map[string]any{"temperature": 0.0}, "m")
		require.NotNil(t, got.Temperature)
		assert.Equal(t, 0.0, *got.Temperature)
	})

	t.Run("out of range temperature is ignored", func(t *testing.T) {
		got := ParseRequestOptions(map[string]any{"temperature": 3.5}, "m")
		assert.Nil(t, got.Temperature)
	})

	t.Run("all fields", func(t *testing.T) {
		got := ParseRequestOptions(map[string]any{
			"system":      "be terse",
			"temperature": 0.2,
			"max_tokens":  512,
			"model":       "override",
		}, "base")

		assert.Equal(t, "be terse", got.System)
		assert.Equal(t, 0.2, *got.Temperature)
		assert.Equal(t, 512, got.MaxTokens)
		assert.Equal(t, "override", got.Model)
	})
}

func TestTokenCounter(t *testing.T) {
	tc := NewTokenCounter()
	assert.Equal(t, 42, tc.Count(42, "ignored"))
	assert.Equal(t, 5, tc.Count(0, "twenty characters.._"))
	assert.Equal(t, 0, tc.Count(0, ""))
}

func TestMetricsMiddleware(t *testing.T) {
	t.Run("passes through responses", func(t *testing.T) {
		core := &fakeCore{model: "m", response: "hello"}
		wrapped := MetricsMiddleware("test")(core)

		resp, in, out, err := wrapped.DoRequest(context.Background(), "p", nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", resp)
		assert.Equal(t, 10, in)
		assert.Equal(t, 5, out)
		assert.Equal(t, 1, core.calls)
	})

	t.Run("passes through errors", func(t *testing.T) {
		boom := errors.New("boom")
		core := &fakeCore{model: "m", err: boom}
		wrapped := MetricsMiddleware("test")(core)

		_, _, _, err := wrapped.DoRequest(context.Background(), "p", nil)
		assert.ErrorIs(t, err, boom)
	})
}
