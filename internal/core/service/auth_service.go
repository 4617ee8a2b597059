package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gvn/lending-platform/internal/core/domain"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// AuthService implements login and registration. Registration writes a user
// row, so it evicts the users cache group after the store commit.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	tokens ports.TokenService
	cache  ports.Cache
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService, cache ports.Cache, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, cache: cache, logger: logger}
}

// Login verifies the supplied credentials against the store and issues a
// bearer token. Unknown usernames, wrong passwords and inactive accounts all
// collapse into ErrInvalidCredentials so the response leaks nothing.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	roles := user.RoleNames()
	token, err := s.tokens.Issue(user.Username, roles)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("login successful")

	return &ports.AuthResult{
		Token:    token,
		Type:     ports.TokenTypeBearer,
		Username: user.Username,
		Roles:    roles,
	}, nil
}

// Register creates a new account with the default USER role and issues a
// token for it. A taken username fails with ErrUsernameTaken; a missing
// default role is a deployment fault and fails with ErrDefaultRoleMissing.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	defaultRole, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrDefaultRoleMissing
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []domain.Role{*defaultRole},
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Evict only after the insert committed so a failed write can never
	// leave the group empty while stale reads repopulate it.
	if err := s.cache.EvictGroup(ctx, CacheGroupUsers); err != nil {
		s.logger.Warn().Err(err).Str("group", CacheGroupUsers).Msg("cache eviction failed")
	}

	roles := created.RoleNames()
	token, err := s.tokens.Issue(created.Username, roles)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")

	return &ports.AuthResult{
		Token:    token,
		Type:     ports.TokenTypeBearer,
		Username: created.Username,
		Roles:    roles,
	}, nil
}
