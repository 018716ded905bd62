package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/livemap-service/internal/config"
	"github.com/livemap-service/internal/delivery/http/handler"
	"github.com/livemap-service/internal/delivery/http/middleware"
	"github.com/livemap-service/internal/pkg/errors"
	"github.com/livemap-service/internal/pkg/utils"
	"github.com/livemap-service/internal/usecase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	authUC *usecase.AuthUseCase

	// Handlers
	streamHandler    *handler.StreamHandler
	occupancyHandler *handler.OccupancyHandler
	parkingHandler   *handler.ParkingHandler
	authHandler      *handler.AuthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authUC *usecase.AuthUseCase,
	streamHandler *handler.StreamHandler,
	occupancyHandler *handler.OccupancyHandler,
	parkingHandler *handler.ParkingHandler,
	authHandler *handler.AuthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Livemap Occupancy Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		authUC:           authUC,
		streamHandler:    streamHandler,
		occupancyHandler: occupancyHandler,
		parkingHandler:   parkingHandler,
		authHandler:      authHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus metrics
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Worker token exchange
	api.Post("/auth/token", s.authHandler.Token)

	requireAuth := middleware.RequireAuth(s.authUC)
	optionalAuth := middleware.OptionalAuth(s.authUC)

	// Video stream source routes. Listing is open, but leasing through
	// mark_in_use_until needs a token, so the list route carries
	// optional auth and the handler decides.
	api.Get("/video-stream-sources/", optionalAuth, s.streamHandler.List)
	api.Post("/video-stream-sources/", requireAuth, s.streamHandler.Create)
	api.Get("/video-stream-sources/:id", s.streamHandler.Get)
	api.Patch("/video-stream-sources/:id", requireAuth, s.streamHandler.Update)
	api.Delete("/video-stream-sources/:id", requireAuth, s.streamHandler.Delete)

	// Occupancy routes
	api.Get("/occupancy/", s.occupancyHandler.List)
	api.Post("/occupancy/", requireAuth, s.occupancyHandler.Create)
	api.Get("/occupancy/:id", s.occupancyHandler.Get)

	// Parking lot routes
	api.Get("/parking-lots/", s.parkingHandler.List)
	api.Post("/parking-lots/", requireAuth, s.parkingHandler.Create)
	api.Get("/parking-lots/:id", s.parkingHandler.Get)
	api.Delete("/parking-lots/:id", requireAuth, s.parkingHandler.Delete)
	api.Get("/parking-lots/:id/summaries", s.parkingHandler.Summaries)
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

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return c.Status(fiberErr.Code).JSON(utils.ErrorResponse{
				Error: errors.New("HTTP_ERROR", fiberErr.Message, fiberErr.Code),
			})
		}

		logger.Error("Unhandled error", zap.Error(err))
		return utils.SendError(c, err)
	}
}
