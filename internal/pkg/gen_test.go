package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAcceptKey(t *testing.T) {
	// Given: the sample nonce from RFC 6455
	key := "dGhlIHNhbXBsZSBub25jZQ=="

	// When: deriving the accept key
	acceptKey := GenerateAcceptKey(key)

	// Then: it matches the value the RFC specifies
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", acceptKey)
}

func TestGenerateNewSessionID(t *testing.T) {
	first := GenerateNewSessionID()
	second := GenerateNewSessionID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestGenerateGameID(t *testing.T) {
	id, err := GenerateGameID()

	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
