package authUtils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	now := time.Now()
	token, err := GenerateToken(secret, "jo", now)
	require.NoError(t, err)

	subject, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "jo", subject)

	_, err = ParseToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestGenerateToken_NoSecret(t *testing.T) {
	_, err := GenerateToken(nil, "jo", time.Now())
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(secret, "jo", time.Now().Add(-TokenTTL-time.Hour))
	require.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.Error(t, err)
}

func TestInspectToken(t *testing.T) {
	issued := time.Unix(1700000000, 0)
	token, err := GenerateToken(secret, "jo", issued)
	require.NoError(t, err)

	info, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jo", info.Subject)
	assert.True(t, info.IssuedAt.Equal(issued))
	assert.True(t, info.ExpiresAt.Equal(issued.Add(TokenTTL)))

	assert.False(t, info.Expired(issued.Add(time.Hour)))
	assert.True(t, info.Expired(issued.Add(TokenTTL)))
	assert.True(t, info.Expired(issued.Add(TokenTTL+time.Second)))
}

func TestInspectToken_Malformed(t *testing.T) {
	_, err := InspectToken("not-a-jwt")
	assert.Error(t, err)
}

func TestTokenInfo_NoExpiry(t *testing.T) {
	info := &TokenInfo{Subject: "jo"}
	assert.False(t, info.Expired(time.Now().Add(100*365*24*time.Hour)))
}
