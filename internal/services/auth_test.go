package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokenService() TokenService {
	return TokenService{
		Secret:     []byte("test-secret"),
		Issuer:     "reporthub",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	tokens := testTokenService()

	hash, err := tokens.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.True(t, tokens.VerifyPassword("correct horse battery", hash))
	assert.False(t, tokens.VerifyPassword("wrong password", hash))
}

func TestVerifyPasswordBcryptFallback(t *testing.T) {
	tokens := testTokenService()

	hash, err := bcrypt.GenerateFromPassword([]byte("legacy password"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, tokens.VerifyPassword("legacy password", string(hash)))
	assert.False(t, tokens.VerifyPassword("not it", string(hash)))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := testTokenService()

	signed, expiresAt, err := tokens.CreateAccessToken("user-1", "ana", RoleAdmin)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, claims, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "access", claims["typ"])
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "ana", claims["username"])
	assert.Equal(t, RoleAdmin, claims["role"])
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tokens := testTokenService()

	signed, err := tokens.CreateRefreshToken("user-1")
	require.NoError(t, err)

	token, claims, err := tokens.ParseToken(signed)
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "refresh", claims["typ"])
	assert.Equal(t, "user-1", claims["sub"])
}

func TestParseTokenRejectsWrongSecretAndIssuer(t *testing.T) {
	tokens := testTokenService()
	signed, _, err := tokens.CreateAccessToken("user-1", "ana", RoleUser)
	require.NoError(t, err)

	other := testTokenService()
	other.Secret = []byte("different-secret")
	_, _, err = other.ParseToken(signed)
	assert.Error(t, err)

	other = testTokenService()
	other.Issuer = "someone-else"
	_, _, err = other.ParseToken(signed)
	assert.Error(t, err)
}
