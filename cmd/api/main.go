package main

// @title Landscape Review Service API
// @version 1.0.0
// @description Предварительная проверка участка по ландшафтному плану.
// @description
// @description Основные возможности:
// @description - Геокодирование адреса или места (VWorld, затем Kakao)
// @description - Поиск границы участка по PNU или по bbox вокруг точки
// @description - Пересечение участка с площадными слоями
// @description - Точечные слои (경관거점, 조망점) в радиусе от точки анализа

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

	_ "github.com/landscape-review/docs"
	"github.com/landscape-review/internal/bootstrap"
	"github.com/landscape-review/internal/config"
	httpDelivery "github.com/landscape-review/internal/delivery/http"
	"github.com/landscape-review/internal/delivery/http/handler"
	"github.com/landscape-review/internal/pkg/logger"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Landscape Review API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("layer_store", cfg.Layers.Store),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	// 3. Storage, providers, use cases
	core, err := bootstrap.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize dependencies", zap.Error(err))
	}
	defer core.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := core.Health(ctx); err != nil {
		cancel()
		log.Fatal("Health check failed", zap.Error(err))
	}
	core.WarmUp(ctx)
	cancel()

	// 4. Initialize HTTP Handlers
	checks := map[string]handler.HealthCheck{}
	if core.DB != nil {
		checks["postgres"] = core.DB.Health
	}
	if core.Redis != nil {
		checks["redis"] = core.Redis.Health
	}

	healthHandler := handler.NewHealthHandler(core.LayerUC, checks, log)
	locationHandler := handler.NewLocationHandler(core.LocationUC, log)
	analysisHandler := handler.NewAnalysisHandler(core.AnalysisUC, log)
	layerHandler := handler.NewLayerHandler(core.LayerUC, log)

	// 5. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		healthHandler,
		locationHandler,
		analysisHandler,
		layerHandler,
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
