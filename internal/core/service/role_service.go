package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gvn/lending-platform/internal/api/metrics"
	"github.com/gvn/lending-platform/internal/core/domain"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// RoleService implements cached CRUD over roles.
type RoleService struct {
	repo     ports.RoleRepository
	cache    ports.Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewRoleService(repo ports.RoleRepository, cache ports.Cache, cacheTTL time.Duration, logger zerolog.Logger) *RoleService {
	return &RoleService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	created, err := s.repo.Create(ctx, &domain.Role{Name: name})
	if err != nil {
		return nil, err
	}
	s.evict(ctx)

	s.logger.Info().Str("name", created.Name).Msg("role created")
	return created, nil
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	if s.cacheGet(ctx, keyAllRoles, &roles) {
		return roles, nil
	}

	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, keyAllRoles, roles)
	return roles, nil
}

func (s *RoleService) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	var role domain.Role
	if s.cacheGet(ctx, roleKey(id), &role) {
		return &role, nil
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, roleKey(id), found)
	return found, nil
}

func (s *RoleService) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	if s.cacheGet(ctx, name, &role) {
		return &role, nil
	}

	found, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, name, found)
	return found, nil
}

func (s *RoleService) Update(ctx context.Context, id int64, input ports.UpdateRoleInput) (*domain.Role, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		existing.Name = *input.Name
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.evict(ctx)

	s.logger.Info().Int64("id", id).Msg("role updated")
	return updated, nil
}

func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx)

	s.logger.Info().Int64("id", id).Msg("role deleted")
	return nil
}

func (s *RoleService) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, CacheGroupRoles, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		metrics.CacheMissesTotal.WithLabelValues(CacheGroupRoles).Inc()
		return false
	}
	if found {
		metrics.CacheHitsTotal.WithLabelValues(CacheGroupRoles).Inc()
		return true
	}
	metrics.CacheMissesTotal.WithLabelValues(CacheGroupRoles).Inc()
	return false
}

func (s *RoleService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, CacheGroupRoles, key, value, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *RoleService) evict(ctx context.Context) {
	if err := s.cache.EvictGroup(ctx, CacheGroupRoles); err != nil {
		s.logger.Warn().Err(err).Str("group", CacheGroupRoles).Msg("cache eviction failed")
		return
	}
	metrics.CacheEvictionsTotal.WithLabelValues(CacheGroupRoles).Inc()
}
