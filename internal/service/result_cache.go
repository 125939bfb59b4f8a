package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizquest/internal/cache"
	"quizquest/internal/domain"
	"quizquest/internal/dto"
	"quizquest/internal/logger"

	"go.uber.org/zap"
)

// ResultCacheService stores graded attempt results so clients can re-fetch a
// result by attempt id without re-grading.
type ResultCacheService interface {
	Put(ctx context.Context, attemptID string, result *dto.AttemptResponse) error
	Get(ctx context.Context, attemptID string) (*dto.AttemptResponse, error)
}

// resultCacheService implements ResultCacheService on top of domain.Cache.
type resultCacheService struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultCacheService creates a new instance of resultCacheService.
func NewResultCacheService(cacheImpl domain.Cache, ttl time.Duration) ResultCacheService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &resultCacheService{cache: cacheImpl, ttl: ttl}
}

func resultCacheKey(attemptID string) string {
	return cache.GenerateCacheKey("attempt", "result", attemptID)
}

func (s *resultCacheService) Put(ctx context.Context, attemptID string, result *dto.AttemptResponse) error {
	if attemptID == "" {
		return domain.NewInvalidInputError("attempt id is required")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal attempt result", err)
	}
	if err := s.cache.Set(ctx, resultCacheKey(attemptID), string(data), s.ttl); err != nil {
		return domain.NewInternalError("failed to cache attempt result", err)
	}
	return nil
}

func (s *resultCacheService) Get(ctx context.Context, attemptID string) (*dto.AttemptResponse, error) {
	raw, err := s.cache.Get(ctx, resultCacheKey(attemptID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewNotFoundError(fmt.Sprintf("Attempt result not found: %s", attemptID))
		}
		return nil, domain.NewInternalError("failed to read attempt result from cache", err)
	}

	var result dto.AttemptResponse
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		logger.Get().Warn("Corrupt attempt result in cache",
			zap.String("attempt_id", attemptID),
			zap.Error(err))
		return nil, domain.NewNotFoundError(fmt.Sprintf("Attempt result not found: %s", attemptID))
	}
	return &result, nil
}

// noopResultCache is used when no cache backend is configured. Puts succeed
// silently and gets always miss.
type noopResultCache struct{}

// NewNoopResultCache creates a ResultCacheService that stores nothing.
func NewNoopResultCache() ResultCacheService {
	return noopResultCache{}
}

func (noopResultCache) Put(ctx context.Context, attemptID string, result *dto.AttemptResponse) error {
	return nil
}

func (noopResultCache) Get(ctx context.Context, attemptID string) (*dto.AttemptResponse, error) {
	return nil, domain.NewNotFoundError(fmt.Sprintf("Attempt result not found: %s", attemptID))
}
