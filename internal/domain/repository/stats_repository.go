package repository

import (
	"context"

	"github.com/geo-directory/internal/domain"
)

// StatsRepository интерфейс для работы со статистикой
type StatsRepository interface {
	// GetStatistics возвращает количество записей по всем коллекциям
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}

// HealthChecker - проверка доступности зависимости
type HealthChecker interface {
	Health(ctx context.Context) error
}
