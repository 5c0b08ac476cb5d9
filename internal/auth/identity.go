package auth

import (
	"github.com/google/uuid"

	"github.com/example/ecommerce/internal/models"
)

// Identity is the single identity assertion produced by a successful login.
// The same value is serialized as an Authorization header (bearer token) for
// cross-service calls and as a signed cookie for browser sessions, so the
// two carriers cannot diverge.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Token    string    `json:"token"`
}

// NewIdentity issues a bearer token for the user and wraps it together with
// the public claims into one identity assertion.
func NewIdentity(tc TokenConfig, user *models.User) (Identity, error) {
	token, err := tc.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Token:    token,
	}, nil
}

// IdentityFromClaims rebuilds an identity from parsed bearer token claims.
// The username is not a token claim and stays empty.
func IdentityFromClaims(claims *TokenClaims, rawToken string) (Identity, error) {
	userID, err := claims.SubjectID()
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
		Token:  rawToken,
	}, nil
}
