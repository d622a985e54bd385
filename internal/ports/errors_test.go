package ports

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendError(t *testing.T) {
	cause := fmt.Errorf("dial: %w", ErrBackendTransport)
	err := NewBackendError("llama-3.1-8b-instant", "extract", cause)

	assert.Contains(t, err.Error(), "llama-3.1-8b-instant")
	assert.Contains(t, err.Error(), "extract")
	assert.ErrorIs(t, err, ErrBackendTransport)
	assert.False(t, errors.Is(err, ErrBackendUnavailable))
}
