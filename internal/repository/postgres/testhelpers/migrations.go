package testhelpers

import (
	"github.com/geo-directory/internal/repository/postgres"
)

// ApplyMigrations применяет встроенные миграции к тестовой базе
func (tdb *TestDB) ApplyMigrations() error {
	return postgres.RunMigrations(tdb.URL, tdb.Logger)
}
