package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorIDSignatureRoundTrip(t *testing.T) {
	sig := SignVisitorID("visitor-123", "secret")

	assert.True(t, VerifyVisitorID("visitor-123", sig, "secret"))
	assert.False(t, VerifyVisitorID("visitor-456", sig, "secret"))
	assert.False(t, VerifyVisitorID("visitor-123", sig, "other-secret"))
	assert.False(t, VerifyVisitorID("visitor-123", sig+"00", "secret"))
	assert.False(t, VerifyVisitorID("visitor-123", "", "secret"))
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword()
	require.NoError(t, err)
	b, err := GeneratePassword()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
