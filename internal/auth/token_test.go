package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:   "test-secret",
		Issuer:   "ecommerce-api",
		Audience: "ecommerce-clients",
		TTL:      time.Hour,
	}
}

func TestIssueAndParseToken(t *testing.T) {
	tc := testTokenConfig()
	userID := uuid.New()

	token, err := tc.IssueToken(userID, "alice@example.com", "User")
	require.NoError(t, err)

	claims, err := tc.ParseToken(token)
	require.NoError(t, err)

	subject, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, userID, subject)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "User", claims.Role)
	assert.Equal(t, "ecommerce-api", claims.Issuer)
}

func TestParseTokenExpired(t *testing.T) {
	tc := testTokenConfig()
	tc.TTL = -time.Minute

	token, err := tc.IssueToken(uuid.New(), "alice@example.com", "User")
	require.NoError(t, err)

	_, err = tc.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tc := testTokenConfig()
	token, err := tc.IssueToken(uuid.New(), "alice@example.com", "User")
	require.NoError(t, err)

	other := tc
	other.Secret = "another-secret"
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenWrongIssuerOrAudience(t *testing.T) {
	tc := testTokenConfig()
	token, err := tc.IssueToken(uuid.New(), "alice@example.com", "User")
	require.NoError(t, err)

	wrongIssuer := tc
	wrongIssuer.Issuer = "someone-else"
	_, err = wrongIssuer.ParseToken(token)
	assert.Error(t, err)

	wrongAudience := tc
	wrongAudience.Audience = "other-clients"
	_, err = wrongAudience.ParseToken(token)
	assert.Error(t, err)
}
