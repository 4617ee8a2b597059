package ports

import "context"

// TokenTypeBearer is the token type reported in auth responses.
const TokenTypeBearer = "Bearer"

// AuthResult is returned by both login and registration.
type AuthResult struct {
	Token    string
	Type     string
	Username string
	Roles    []string
}

// AuthService orchestrates credential verification, registration-time role
// assignment and token issuance.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
}
