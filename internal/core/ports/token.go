package ports

import "time"

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed bearer tokens. Both operations are
// pure computations over the token bytes, the signing key and the clock;
// neither touches storage.
type TokenService interface {
	Issue(subject string, roles []string) (string, error)
	Verify(token string) (*TokenClaims, error)
	// ValidateFor reports whether token verifies and its subject equals
	// expectedSubject.
	ValidateFor(token, expectedSubject string) bool
}
