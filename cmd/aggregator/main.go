package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/livemap-service/internal/config"
	"github.com/livemap-service/internal/pkg/logger"
	"github.com/livemap-service/internal/repository/cache"
	"github.com/livemap-service/internal/repository/postgres"
	"github.com/livemap-service/internal/usecase"
	"github.com/livemap-service/internal/worker"
	"github.com/livemap-service/internal/worker/aggregation"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if aggregator is enabled
	if !cfg.Aggregator.Enabled {
		fmt.Println("Aggregator is disabled in configuration. Set AGGREGATOR_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Occupancy Aggregation Worker")
	log.Info("Configuration loaded",
		zap.Duration("interval", cfg.Aggregator.Interval))

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

	// 5. Initialize repositories
	occupancyRepo := postgres.NewOccupancyRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// 6. Initialize use cases
	aggregationUC := usecase.NewAggregationUseCase(
		occupancyRepo,
		cacheRepo,
		log,
	)

	// 7. Initialize workers
	aggregationWorker := aggregation.NewAggregationWorker(
		aggregationUC,
		cfg.Aggregator.Interval,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(aggregationWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start workers
	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	// Stop worker manager
	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
