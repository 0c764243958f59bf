package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/geo-directory/internal/config"
	"github.com/geo-directory/internal/delivery/http/handler"
	"github.com/geo-directory/internal/delivery/http/middleware"
	"github.com/geo-directory/internal/pkg/errors"
	"github.com/geo-directory/internal/pkg/utils"
)

// Registrar - handler коллекции, который сам вешает свои маршруты
type Registrar interface {
	Register(router fiber.Router)
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	collections   []Registrar
	statsHandler  *handler.StatsHandler
	systemHandler *handler.SystemHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	statsHandler *handler.StatsHandler,
	systemHandler *handler.SystemHandler,
	collections ...Registrar,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Geo Directory",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.HTTP.BodyLimit,
		// "/cities/New%20York" -> Params("name") == "New York"
		UnescapePath: true,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		collections:   collections,
		statsHandler:  statsHandler,
		systemHandler: systemHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App отдаёт fiber.App для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestIDMiddleware())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Metrics())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.HTTP.CORSOrigins))
	s.app.Use(middleware.RateLimit(s.config.HTTP.RateLimit, s.config.HTTP.RateLimitBurst, "/health", "/metrics"))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.app.Get("/hello", s.systemHandler.Hello)
	s.app.Get("/endpoints", s.systemHandler.Endpoints)
	s.app.Get("/timestamp", s.systemHandler.Timestamp)
	s.app.Get("/random", s.systemHandler.Random)
	s.app.Get("/dice", s.systemHandler.Dice)
	s.app.Get("/health", s.systemHandler.Health)
	s.app.Get("/stats", s.statsHandler.GetStatistics)

	for _, h := range s.collections {
		h.Register(s.app)
	}
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки самого fiber (нет маршрута, 405, большое тело)
// в том же конверте, что и ошибки handler'ов
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		e, ok := err.(*fiber.Error)
		if !ok {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.String("request_id", middleware.RequestID(c)),
				zap.Error(err),
			)
			return utils.SendError(c, err)
		}

		code := "HTTP_ERROR"
		switch e.Code {
		case fiber.StatusNotFound:
			code = errors.ErrNotFound.Code
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		case fiber.StatusBadRequest:
			code = errors.ErrInvalidRequest.Code
		}

		return c.Status(e.Code).JSON(utils.ErrorResponse{Error: e.Message, Code: code})
	}
}
