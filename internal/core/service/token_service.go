package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gvn/lending-platform/internal/core/domain"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// TokenService issues and verifies HS256-signed bearer tokens. Verification
// is stateless: expiry is enforced from the embedded timestamp alone, so no
// server-side session store is involved.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue builds a signed token for subject carrying the role names,
// with issuedAt = now and expiresAt = now + TTL.
func (s *TokenService) Issue(subject string, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := tokenClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses token and checks its signature and expiry. It returns
// domain.ErrTokenExpired for a well-signed but stale token and
// domain.ErrTokenInvalid for anything tampered, malformed, or signed with
// an unexpected algorithm.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	out := &ports.TokenClaims{
		Subject: claims.Subject,
		Roles:   claims.Roles,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

// ValidateFor reports whether token verifies and was issued for
// expectedSubject.
func (s *TokenService) ValidateFor(token, expectedSubject string) bool {
	claims, err := s.Verify(token)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}
