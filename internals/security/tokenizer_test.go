package security

import (
	"testing"
	"urlmonitor/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := NewTokenService(&config.AuthConfig{Secret: "test-secret", ExpiryMin: 5})

	token, err := ts.GenerateAccessToken(RequestClaims{
		UserID:   "b2f1c9a0-0000-0000-0000-000000000001",
		Username: "admin",
		Role:     "superadmin",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "superadmin", claims.Role)
	assert.Equal(t, "b2f1c9a0-0000-0000-0000-000000000001", claims.UserID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService(&config.AuthConfig{Secret: "secret-a", ExpiryMin: 5})
	verifier := NewTokenService(&config.AuthConfig{Secret: "secret-b", ExpiryMin: 5})

	token, err := issuer.GenerateAccessToken(RequestClaims{Username: "admin"})
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	ts := NewTokenService(&config.AuthConfig{Secret: "test-secret", ExpiryMin: 5})

	_, err := ts.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
