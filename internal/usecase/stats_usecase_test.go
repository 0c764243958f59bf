package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/usecase"
)

func TestStatsUseCase_GetStatistics(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	stats := &domain.Statistics{Cities: 10, Countries: 3, States: 50, LastUpdated: time.Now()}

	t.Run("cache hit", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo.On("GetStats", ctx).Return(stats, nil)

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, logger, time.Hour)
		got, err := uc.GetStatistics(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stats, got)
		statsRepo.AssertNotCalled(t, "GetStatistics", mock.Anything)
	})

	t.Run("cache miss falls back to store and caches", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo.On("GetStats", ctx).Return(nil, nil)
		statsRepo.On("GetStatistics", ctx).Return(stats, nil)
		cacheRepo.On("SetStats", ctx, stats, time.Hour).Return(nil)

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, logger, time.Hour)
		got, err := uc.GetStatistics(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stats, got)
		cacheRepo.AssertExpectations(t)
		statsRepo.AssertExpectations(t)
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo.On("GetStats", ctx).Return(nil, errors.New("redis down"))
		statsRepo.On("GetStatistics", ctx).Return(stats, nil)
		cacheRepo.On("SetStats", ctx, stats, time.Hour).Return(errors.New("redis down"))

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, logger, time.Hour)
		got, err := uc.GetStatistics(ctx)

		assert.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("store error", func(t *testing.T) {
		cacheRepo := &MockCacheRepository{}
		statsRepo := &MockStatsRepository{}
		cacheRepo.On("GetStats", ctx).Return(nil, nil)
		statsRepo.On("GetStatistics", ctx).Return(nil, errors.New("db down"))

		uc := usecase.NewStatsUseCase(statsRepo, cacheRepo, logger, time.Hour)
		_, err := uc.GetStatistics(ctx)

		assert.Error(t, err)
	})
}
