package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gvn/lending-platform/internal/core/domain"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// UserResolver resolves a token subject to a stored user. The cached
// user-service lookup satisfies it, so subject resolution rides the same
// read-through path as the /users endpoints.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Auth validates the bearer token, resolves its subject to an existing
// active user, and injects username and roles into the request context.
// A token is rejected when the signature fails, the token is expired, or
// the subject no longer maps to an active account.
func Auth(tokens ports.TokenService, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return err
			}

			user, err := users.GetByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrTokenInvalid
				}
				return err
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "account inactive")
			}

			c.Set("username", user.Username)
			c.Set("roles", user.RoleNames())

			return next(c)
		}
	}
}
