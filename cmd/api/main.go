package main

// @title Geo Directory API
// @version 1.0.0
// @description Справочник городов, стран и штатов США.
// @description
// @description Основные возможности:
// @description - CRUD для cities, countries, states
// @description - Поиск по подстроке имени и точному совпадению кодов
// @description - Bulk-операции с частичным успехом (207 Multi-Status)
// @description - Статистика по коллекциям

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/geo-directory/docs"
	"github.com/geo-directory/internal/config"
	httpDelivery "github.com/geo-directory/internal/delivery/http"
	"github.com/geo-directory/internal/delivery/http/handler"
	"github.com/geo-directory/internal/domain"
	"github.com/geo-directory/internal/domain/repository"
	"github.com/geo-directory/internal/pkg/logger"
	"github.com/geo-directory/internal/repository/cache"
	"github.com/geo-directory/internal/repository/memory"
	"github.com/geo-directory/internal/repository/postgres"
	redisRepo "github.com/geo-directory/internal/repository/redis"
	"github.com/geo-directory/internal/usecase"
)

// storage - репозитории выбранного драйвера
type storage struct {
	cities    repository.CityRepository
	countries repository.CountryRepository
	states    repository.StateRepository
	stats     repository.StatsRepository
	health    repository.HealthChecker
	close     func() error
}

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Geo Directory")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	// 3. Storage
	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	store, err := openStorage(startCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer func() {
		if err := store.close(); err != nil {
			log.Error("Failed to close storage", zap.Error(err))
		}
	}()

	// 4. Cache and change stream
	var (
		cacheRepo   repository.CacheRepository
		publisher   repository.ChangePublisher
		cacheHealth repository.HealthChecker
	)
	if cfg.Redis.Enabled {
		redisClient, err := cache.Dial(startCtx, cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		publisher = redisRepo.NewChangePublisher(streamRepo, cfg.Cache.ChangesStream)
		cacheHealth = redisClient
	} else {
		cacheRepo = cache.NewLocalCacheRepository(cfg.Cache.TTL, log)
		log.Info("Redis disabled, using in-process cache")
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.health.Health(ctx); err != nil {
		log.Fatal("Storage health check failed", zap.Error(err))
	}
	if cacheHealth != nil {
		if err := cacheHealth.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}
	}

	log.Info("All connections healthy")

	// 6. Initialize Use Cases
	cityUC := usecase.NewEntityUseCase[domain.City](store.cities, cacheRepo, publisher, log, cfg.Cache.TTL, cfg.HTTP.MaxBulkItems)
	countryUC := usecase.NewEntityUseCase[domain.Country](store.countries, cacheRepo, publisher, log, cfg.Cache.TTL, cfg.HTTP.MaxBulkItems)
	stateUC := usecase.NewEntityUseCase[domain.State](store.states, cacheRepo, publisher, log, cfg.Cache.TTL, cfg.HTTP.MaxBulkItems)
	statsUC := usecase.NewStatsUseCase(store.stats, cacheRepo, log, cfg.Cache.StatsCacheTTL)
	healthUC := usecase.NewHealthUseCase(store.health, cacheHealth, log)

	log.Info("Use cases initialized")

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewStatsHandler(statsUC, log),
		handler.NewSystemHandler(healthUC),
		handler.NewEntityHandler(cityUC, log),
		handler.NewEntityHandler(countryUC, log),
		handler.NewEntityHandler(stateUC, log),
	)

	log.Info("HTTP server initialized")

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		cities := memory.NewCityRepository(log)
		countries := memory.NewCountryRepository(log)
		states := memory.NewStateRepository(log)
		log.Warn("Using in-memory storage, data is lost on restart")

		return &storage{
			cities:    cities,
			countries: countries,
			states:    states,
			stats:     memory.NewStatsRepository(cities, countries, states),
			health:    memory.HealthChecker{},
			close:     func() error { return nil },
		}, nil
	}

	if cfg.Database.Migrate {
		if err := postgres.RunMigrations(cfg.GetDatabaseURL(), log); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	db, err := postgres.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}

	return &storage{
		cities:    postgres.NewCityRepository(db),
		countries: postgres.NewCountryRepository(db),
		states:    postgres.NewStateRepository(db),
		stats:     postgres.NewStatsRepository(db, log),
		health:    db,
		close:     db.Close,
	}, nil
}
