package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gvn/lending-platform/internal/api/metrics"
	"github.com/gvn/lending-platform/internal/core/domain"
	"github.com/gvn/lending-platform/internal/core/ports"
)

// ProductService implements cached CRUD over lending products.
type ProductService struct {
	repo     ports.ProductRepository
	cache    ports.Cache
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.Cache, cacheTTL time.Duration, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		Name:         input.Name,
		Tenor:        input.Tenor,
		InterestRate: input.InterestRate,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.evict(ctx)

	s.logger.Info().Str("name", created.Name).Int64("id", created.ID).Msg("product created")
	return created, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if s.cacheGet(ctx, keyAllProducts, &products) {
		return products, nil
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, keyAllProducts, products)
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if s.cacheGet(ctx, productKey(id), &product) {
		return &product, nil
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, productKey(id), found)
	return found, nil
}

// Update applies a partial update: only non-nil fields overwrite.
func (s *ProductService) Update(ctx context.Context, id int64, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Tenor != nil {
		existing.Tenor = *input.Tenor
	}
	if input.InterestRate != nil {
		existing.InterestRate = *input.InterestRate
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.evict(ctx)

	s.logger.Info().Int64("id", id).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx)

	s.logger.Info().Int64("id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) cacheGet(ctx context.Context, key string, dest any) bool {
	found, err := s.cache.Get(ctx, CacheGroupProducts, key, dest)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to store")
		metrics.CacheMissesTotal.WithLabelValues(CacheGroupProducts).Inc()
		return false
	}
	if found {
		metrics.CacheHitsTotal.WithLabelValues(CacheGroupProducts).Inc()
		return true
	}
	metrics.CacheMissesTotal.WithLabelValues(CacheGroupProducts).Inc()
	return false
}

func (s *ProductService) cacheSet(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, CacheGroupProducts, key, value, s.cacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *ProductService) evict(ctx context.Context) {
	if err := s.cache.EvictGroup(ctx, CacheGroupProducts); err != nil {
		s.logger.Warn().Err(err).Str("group", CacheGroupProducts).Msg("cache eviction failed")
		return
	}
	metrics.CacheEvictionsTotal.WithLabelValues(CacheGroupProducts).Inc()
}
