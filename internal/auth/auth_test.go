package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken(1, "user@example.com", "client", testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "user@example.com", "client", testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", testSecret)
	assert.Error(t, err)
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := GenerateAccessToken(1, "user@example.com", "client", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)

	_, err = ValidateToken("whatever", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestRefreshAccessToken(t *testing.T) {
	_, refreshToken, err := GenerateTokens(2, "user@example.com", "trainer", testSecret)
	require.NoError(t, err)

	newAccess, claims, err := RefreshAccessToken(refreshToken, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)
	assert.Equal(t, 2, claims.UserID)

	accessClaims, err := ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", accessClaims.TokenType)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	accessToken, _, err := GenerateTokens(2, "user@example.com", "trainer", testSecret)
	require.NoError(t, err)

	_, _, err = RefreshAccessToken(accessToken, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}
