package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/landscape-review/internal/bootstrap"
	"github.com/landscape-review/internal/config"
	"github.com/landscape-review/internal/pkg/logger"
	redisRepo "github.com/landscape-review/internal/repository/redis"
	"github.com/landscape-review/internal/worker"
	"github.com/landscape-review/internal/worker/analysis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// Redis Streams - единственный транспорт воркера
	if !cfg.Redis.Enabled {
		fmt.Println("Worker requires Redis. Set REDIS_ENABLED=true.")
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Landscape Analysis Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout),
		zap.String("layer_store", cfg.Layers.Store))

	// 3. Storage, providers, use cases
	core, err := bootstrap.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer core.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := core.Health(ctx); err != nil {
		log.Fatal("Health check failed", zap.Error(err))
	}
	core.WarmUp(ctx)

	// 4. Initialize workers
	streamRepo := redisRepo.NewStreamRepository(core.Redis.Client(), cfg.Worker.StreamReadTimeout, log)

	analysisWorker := analysis.NewWorker(
		streamRepo,
		core.LocationUC,
		core.AnalysisUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	// 5. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(worker.DefaultShutdownTimeout, log)
	workerManager.Register(analysisWorker)

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

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
