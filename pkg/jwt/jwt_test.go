package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "admin@alupro.com", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestManager_RefreshTokenRejectedAsAccess(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestManager_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Minute, time.Hour)
	verifier := NewManager("secret-b", time.Minute, time.Hour)

	token, err := issuer.GenerateAccessToken("user-1", "a@b.com", "user")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestManager_ExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@b.com", "user")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
