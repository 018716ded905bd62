package main

// @title Livemap Occupancy Service API
// @version 1.0.0
// @description Бэкенд для отслеживания заполняемости парковок по видеопотокам. Хранит географическую иерархию (страна, город, адрес, парковка), источники видеопотоков и замеры занятости, выдаёт воркерам аренды на потоки и агрегирует почасовую статистику.
// @description
// @description Основные возможности:
// @description - CRUD для парковок и источников видеопотоков
// @description - Аренда потоков воркерами через mark_in_use_until
// @description - Приём замеров занятости от воркеров
// @description - Почасовые сводки заполняемости по каждой парковке

// @contact.name API Support
// @contact.email support@livemap-service.com

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

	_ "github.com/livemap-service/docs/swagger"
	"github.com/livemap-service/internal/config"
	httpDelivery "github.com/livemap-service/internal/delivery/http"
	"github.com/livemap-service/internal/delivery/http/handler"
	"github.com/livemap-service/internal/pkg/logger"
	"github.com/livemap-service/internal/repository/cache"
	"github.com/livemap-service/internal/repository/postgres"
	"github.com/livemap-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Livemap Occupancy Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	parkingRepo := postgres.NewParkingRepository(db)
	streamRepo := postgres.NewStreamRepository(db)
	occupancyRepo := postgres.NewOccupancyRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	authUC := usecase.NewAuthUseCase(&cfg.Auth, log)

	streamUC := usecase.NewStreamUseCase(
		streamRepo,
		parkingRepo,
		log,
	)

	occupancyUC := usecase.NewOccupancyUseCase(
		occupancyRepo,
		parkingRepo,
		cacheRepo,
		log,
		cfg.Cache.SummaryCacheTTL,
	)

	parkingUC := usecase.NewParkingUseCase(parkingRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	streamHandler := handler.NewStreamHandler(streamUC, log)
	occupancyHandler := handler.NewOccupancyHandler(occupancyUC, log)
	parkingHandler := handler.NewParkingHandler(parkingUC, occupancyUC, log)
	authHandler := handler.NewAuthHandler(authUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		authUC,
		streamHandler,
		occupancyHandler,
		parkingHandler,
		authHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
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
