package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
)

// StatsUseCase обрабатывает бизнес-логику для статистики
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	ttl       time.Duration
}

// NewStatsUseCase создает новый экземпляр StatsUseCase
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	ttl time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		ttl:       ttl,
	}
}

// GetStatistics возвращает снимок статистики из кеша, иначе считает в хранилище
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
		return cached, nil
	}

	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	return uc.RefreshStatistics(ctx)
}

// RefreshStatistics пересчитывает статистику и обновляет снимок в кеше
func (uc *StatsUseCase) RefreshStatistics(ctx context.Context) (*domain.Statistics, error) {
	stats, err := uc.statsRepo.GetStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh statistics: %w", err)
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.ttl); err != nil {
		// Не возвращаем ошибку, т.к. данные уже получены
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
	}

	uc.logger.Debug("Statistics refreshed",
		zap.Int("cities", stats.Cities),
		zap.Int("countries", stats.Countries),
		zap.Int("states", stats.States))
	return stats, nil
}
