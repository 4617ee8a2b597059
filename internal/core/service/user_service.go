package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/gvn/lending-platform/internal/api/metrics"
	"github.com/gvn/lending-platform/internal/core/domain"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// UserService implements cached CRUD over users. Reads go through the
// "users" cache group; every write evicts the group after the store commit.
type UserService struct {
	repo     ports.UserRepository
	roleRepo ports.RoleRepository
	cache    ports.Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, roleRepo ports.RoleRepository, cache ports.Cache, cacheTTL time.Duration, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, roleRepo: roleRepo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	roles, err := s.resolveRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Active:       input.Active,
		Roles:        roles,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.evict(ctx)

	s.logger.Info().Str("username", created.Username).Int64("id", created.ID).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if s.cacheGet(ctx, keyAllUsers, &users) {
		return users, nil
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, keyAllUsers, users)
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if s.cacheGet(ctx, userKey(id), &user) {
		return &user, nil
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, userKey(id), found)
	return found, nil
}

// GetByUsername is the cached lookup behind bearer-token subject resolution.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if s.cacheGet(ctx, username, &user) {
		return &user, nil
	}

	found, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, username, found)
	return found, nil
}

// Update applies a partial update: only non-nil fields overwrite, a non-nil
// roles list replaces the assignments, and a supplied password is re-hashed.
func (s *UserService) Update(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		existing.Username = *input.Username
	}
	if input.Email != nil {
		existing.Email = *input.Email
	}
	if input.Active != nil {
		existing.Active = *input.Active
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = string(hash)
	}
	if input.Roles != nil {
		roles, err := s.resolveRoles(ctx, input.Roles)
		if err != nil {
			return nil, err
		}
		existing.Roles = roles
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.evict(ctx)

	s.logger.Info().Int64("id", id).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx)

	s.logger.Info().Int64("id", id).Msg("user deleted")
	return nil
}

// resolveRoles maps role names to stored roles. Unknown names surface as
// ErrRoleNotFound so the boundary reports which input was bad.
func (s *UserService) resolveRoles(ctx context.Context, names []string) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(names))
	for _, name := range names {
		role, err := s.roleRepo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

func (s *UserService) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, CacheGroupUsers, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		metrics.CacheMissesTotal.WithLabelValues(CacheGroupUsers).Inc()
		return false
	}
	if found {
		metrics.CacheHitsTotal.WithLabelValues(CacheGroupUsers).Inc()
		return true
	}
	metrics.CacheMissesTotal.WithLabelValues(CacheGroupUsers).Inc()
	return false
}

func (s *UserService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, CacheGroupUsers, key, value, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *UserService) evict(ctx context.Context) {
	if err := s.cache.EvictGroup(ctx, CacheGroupUsers); err != nil {
		s.logger.Warn().Err(err).Str("group", CacheGroupUsers).Msg("cache eviction failed")
		return
	}
	metrics.CacheEvictionsTotal.WithLabelValues(CacheGroupUsers).Inc()
}
