package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/config"
)

const (
	pingAttempts = 3
	pingTimeout  = 5 * time.Second
)

// DB - пул соединений справочника, общий для всех коллекций
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// Open открывает пул через драйвер pgx и ждёт, пока база ответит на пинг.
// Отмена ctx прерывает ожидание.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*DB, error) {
	sqlDB, err := sqlx.Open("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool := cfg.Database
	sqlDB.SetMaxOpenConns(pool.MaxConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	db := Wrap(sqlDB, logger)
	if err := db.waitReady(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", pool.Host),
		zap.Int("port", pool.Port),
		zap.String("database", pool.DBName),
		zap.Int("max_conns", pool.MaxConns),
	)
	return db, nil
}

// Wrap оборачивает готовое соединение; используется тестами с testcontainers
func Wrap(sqlDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{DB: sqlDB, logger: logger}
}

func (db *DB) waitReady(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		db.logger.Warn("PostgreSQL is not ready",
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return fmt.Errorf("ping database after %d attempts: %w", pingAttempts, err)
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

// Health - проверка для /health
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}
