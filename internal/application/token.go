package application

import "time"

// TokenClaims is the verified identity carried by an access token.
type TokenClaims struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// TokenService issues and verifies access tokens. The implementation lives
// in the infrastructure layer.
type TokenService interface {
	// Issue creates a signed token for the user.
	Issue(userID, role string) (token string, expiresAt time.Time, err error)

	// Verify parses and validates a token, returning its claims.
	Verify(token string) (*TokenClaims, error)
}
