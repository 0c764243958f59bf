package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/usecase/dto"
)

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"
)

// HealthUseCase опрашивает зависимости сервиса
type HealthUseCase struct {
	db      repository.HealthChecker
	cache   repository.HealthChecker
	logger  *zap.Logger
	timeout time.Duration
}

// NewHealthUseCase; cache может быть nil, если Redis выключен
func NewHealthUseCase(db, cache repository.HealthChecker, logger *zap.Logger) *HealthUseCase {
	return &HealthUseCase{
		db:      db,
		cache:   cache,
		logger:  logger,
		timeout: 2 * time.Second,
	}
}

// Check пингует зависимости параллельно и замеряет время ответа
func (uc *HealthUseCase) Check(ctx context.Context) *dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	now := time.Now().UTC()
	resp := &dto.HealthResponse{
		Status:    HealthStatusOK,
		Timestamp: now.Format(time.RFC3339),
		Unix:      now.Unix(),
	}

	var g errgroup.Group
	g.Go(func() error {
		resp.DB = ping(ctx, uc.db)
		return nil
	})
	if uc.cache != nil {
		cacheHealth := &dto.DependencyHealth{}
		resp.Cache = cacheHealth
		g.Go(func() error {
			*cacheHealth = ping(ctx, uc.cache)
			return nil
		})
	}
	_ = g.Wait()

	if !resp.DB.OK || (resp.Cache != nil && !resp.Cache.OK) {
		resp.Status = HealthStatusDegraded
		uc.logger.Warn("Health check degraded",
			zap.String("db_error", resp.DB.Error))
	}
	return resp
}

func ping(ctx context.Context, checker repository.HealthChecker) dto.DependencyHealth {
	start := time.Now()
	err := checker.Health(ctx)
	h := dto.DependencyHealth{
		OK:          err == nil,
		RoundTripMS: float64(time.Since(start).Microseconds()) / 1000,
	}
	if err != nil {
		h.Error = err.Error()
	}
	return h
}
