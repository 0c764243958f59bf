package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.Wrap(db, logger)
}

// NewCityRepositoryForTest creates a city repository with test database and logger
func NewCityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CityRepository {
	return postgres.NewCityRepository(NewDBForTest(db, logger))
}

// NewCountryRepositoryForTest creates a country repository with test database and logger
func NewCountryRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CountryRepository {
	return postgres.NewCountryRepository(NewDBForTest(db, logger))
}

// NewStateRepositoryForTest creates a state repository with test database and logger
func NewStateRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StateRepository {
	return postgres.NewStateRepository(NewDBForTest(db, logger))
}

// NewStatsRepositoryForTest creates a stats repository with test database and logger
func NewStatsRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.StatsRepository {
	return postgres.NewStatsRepository(NewDBForTest(db, logger), logger)
}
