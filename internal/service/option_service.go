package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/csab-tools/csab-match-api/internal/repository"
	appErrors "github.com/csab-tools/csab-match-api/pkg/errors"
)

const optionCacheKeyPrefix = "options"

// OptionRepository describes the persistence layer for distinct values.
type OptionRepository interface {
	DistinctValues(ctx context.Context, field string) ([]string, error)
}

// OptionService serves dropdown option lists with cache-aside Redis caching.
type OptionService struct {
	repo    OptionRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	ttl     time.Duration
}

// NewOptionService constructs an option service.
func NewOptionService(repo OptionRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, ttl time.Duration) *OptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptionService{repo: repo, cache: cache, metrics: metrics, logger: logger, ttl: ttl}
}

// Values returns the distinct values of one filterable field. The boolean
// indicates whether data originated from cache.
func (s *OptionService) Values(ctx context.Context, field string) ([]string, bool, error) {
	if !repository.OptionField(field) {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown option field %q", field))
	}

	cacheKey := fmt.Sprintf("%s:%s", optionCacheKeyPrefix, field)
	var cached []string
	if s.cache != nil {
		// Cache errors degrade to a database read; they are logged inside
		// the cache service.
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return cached, true, nil
		}
	}

	start := time.Now()
	values, err := s.repo.DistinctValues(ctx, field)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list options")
	}
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("distinct_options", time.Since(start))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, values, s.ttl); err != nil {
			s.logger.Warn("cache options", zap.String("field", field), zap.Error(err))
		}
	}
	return values, false, nil
}

// Invalidate drops every cached option list, typically after a new
// counselling round has been loaded.
func (s *OptionService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, optionCacheKeyPrefix+":*"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to invalidate option cache")
	}
	return nil
}
