package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "craftsman-1", "craftsman", testSecret, time.Hour, "zimmr-test")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "craftsman-1", claims.CraftsmanID)
	assert.Equal(t, "craftsman", claims.Role)
	assert.Equal(t, "zimmr-test", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "", "admin", testSecret, time.Hour, "zimmr-test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "another-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-1", "", "craftsman", testSecret, -time.Minute, "zimmr-test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseAndValidateJWT_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(unsigned, testSecret)
	assert.Error(t, err)
}

func TestRefreshTokenHash(t *testing.T) {
	raw, err := GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, raw, 64)

	hash := HashRefreshToken(raw)
	assert.NotEqual(t, raw, hash)
	assert.True(t, CompareRefreshTokenHash(raw, hash))
	assert.False(t, CompareRefreshTokenHash(raw+"x", hash))

	_, err = GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-Pa55")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-Pa55", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
