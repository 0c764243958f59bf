package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	apperrors "github.com/geo-directory/internal/pkg/errors"
)

const statisticsQuery = `
	SELECT
		(SELECT COUNT(*) FROM cities)    AS cities,
		(SELECT COUNT(*) FROM countries) AS countries,
		(SELECT COUNT(*) FROM states)    AS states`

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// GetStatistics считает записи во всех коллекциях одним запросом
func (r *statsRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	var row struct {
		Cities    int `db:"cities"`
		Countries int `db:"countries"`
		States    int `db:"states"`
	}

	if err := r.db.GetContext(ctx, &row, statisticsQuery); err != nil {
		r.logger.Error("failed to get statistics", zap.Error(err))
		return nil, fmt.Errorf("get statistics: %w: %w", apperrors.ErrDatabaseError, err)
	}

	return &domain.Statistics{
		Cities:      row.Cities,
		Countries:   row.Countries,
		States:      row.States,
		LastUpdated: time.Now().UTC(),
	}, nil
}
