package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() JWTService {
	return NewJWTService(Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		ExpiryHours:   1,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()
	claims := &TokenClaims{
		UserID:    uuid.New(),
		ProfileID: uuid.New(),
		Username:  "alice",
	}

	token, err := svc.GenerateAccessToken(claims)
	require.NoError(t, err)

	parsed, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, claims.ProfileID, parsed.ProfileID)
	assert.Equal(t, "alice", parsed.Username)
}

func TestRefreshTokenUsesSeparateSecret(t *testing.T) {
	svc := newTestJWTService()
	claims := &TokenClaims{UserID: uuid.New(), ProfileID: uuid.New(), Username: "alice"}

	refresh, err := svc.GenerateRefreshToken(claims)
	require.NoError(t, err)

	// A refresh token must not pass as an access token.
	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)

	parsed, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateRejectsForgedToken(t *testing.T) {
	claims := &TokenClaims{UserID: uuid.New(), ProfileID: uuid.New(), Username: "mallory"}

	forged, err := NewJWTService(Config{Secret: "other-secret", RefreshSecret: "x"}).GenerateAccessToken(claims)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateToken(forged)
	assert.Error(t, err)
}
