package translator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAnthropic(t *testing.T) {
	apiErr := fmt.Errorf("error, status code: 401, message: %w", &anthropic.APIError{Message: "invalid x-api-key"})

	err := classifyAnthropic(apiErr)
	assert.Equal(t, KindProvider, KindOf(err))

	var te *Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "invalid x-api-key", te.Message)
	assert.Equal(t, ProviderAnthropic, te.Provider)

	err = classifyAnthropic(errors.New("dial tcp: connection refused"))
	assert.Equal(t, KindTransport, KindOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropic("", "", "")
	assert.ErrorIs(t, err, ErrMissingCredential)

	a, err := NewAnthropic("key", "", "")
	require.NoError(t, err)
	assert.Equal(t, anthropic.ModelClaude3Dot5Sonnet20240620, a.model)
}
