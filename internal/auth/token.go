package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the claims embedded in a bearer token: the subject holds
// the user ID, email and role are custom claims.
type TokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenConfig carries the signing parameters for bearer tokens.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// IssueToken creates a signed HS256 JWT for the given user identity.
func (tc TokenConfig) IssueToken(userID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    tc.Issuer,
			Audience:  jwt.ClaimStrings{tc.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tc.Secret))
}

// ParseToken validates signature, expiry, issuer and audience, and returns
// the embedded claims.
func (tc TokenConfig) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(tc.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tc.Issuer),
		jwt.WithAudience(tc.Audience),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// SubjectID parses the subject claim back into a user ID.
func (c *TokenClaims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}
