package testhelpers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/geo-directory/internal/config"
	"github.com/geo-directory/internal/repository/postgres"
)

// TestDB - соединение с тестовой базой и её адрес для миграций
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
	URL    string
}

// SetupTestDB подключается к базе из TEST_DB_*.
// Тест пропускается, если TEST_DB_HOST не задан.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST is not set, skipping PostgreSQL integration tests")
	}

	port, err := strconv.Atoi(getEnv("TEST_DB_PORT", "5433"))
	if err != nil {
		t.Fatalf("invalid TEST_DB_PORT: %v", err)
	}

	cfg := &config.Config{Database: config.DatabaseConfig{
		Host:     host,
		Port:     port,
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		DBName:   getEnv("TEST_DB_NAME", "geo_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
		MaxConns: 5,
	}}

	logger := zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("connect to test database %s: %v", cfg.Database.Host, err)
	}

	return &TestDB{DB: db.DB, Logger: logger, URL: cfg.GetDatabaseURL()}
}

func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup очищает таблицы справочника между тестами
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	for _, table := range []string{"cities", "states", "countries"} {
		if _, err := tdb.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
