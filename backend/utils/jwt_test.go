package utils

import (
	"testing"
	"time"

	"skillforge/backend/config"
	"skillforge/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(ttl time.Duration) *config.Config {
	return &config.Config{JWTSecret: "testsecret", TokenTTL: ttl}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig(time.Hour)
	user := &models.User{ID: 42, Email: "user@example.com"}

	token, err := GenerateJWTToken(user, cfg)
	require.NoError(t, err)

	userID, err := ParseBearerToken("Bearer "+token, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseBearerTokenMissing(t *testing.T) {
	cfg := testConfig(time.Hour)

	_, err := ParseBearerToken("", cfg)
	assert.ErrorIs(t, err, ErrMissingToken)

	// A header without the Bearer scheme carries no usable token.
	_, err = ParseBearerToken("sometoken", cfg)
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = ParseBearerToken("Bearer ", cfg)
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestParseBearerTokenInvalid(t *testing.T) {
	cfg := testConfig(time.Hour)

	_, err := ParseBearerToken("Bearer not-a-jwt", cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBearerTokenWrongKey(t *testing.T) {
	user := &models.User{ID: 1, Email: "user@example.com"}
	token, err := GenerateJWTToken(user, testConfig(time.Hour))
	require.NoError(t, err)

	_, err = ParseBearerToken("Bearer "+token, &config.Config{JWTSecret: "othersecret", TokenTTL: time.Hour})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseBearerTokenExpired(t *testing.T) {
	cfg := testConfig(-time.Minute)
	user := &models.User{ID: 1, Email: "user@example.com"}

	token, err := GenerateJWTToken(user, cfg)
	require.NoError(t, err)

	_, err = ParseBearerToken("Bearer "+token, cfg)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
