// Package bootstrap собирает зависимости, общие для api и worker:
// хранилище слоев, провайдеры геокодирования и границ, use cases.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/landscape-review/internal/config"
	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/domain/repository"
	"github.com/landscape-review/internal/infrastructure/kakao"
	"github.com/landscape-review/internal/infrastructure/vworld"
	"github.com/landscape-review/internal/repository/cache"
	"github.com/landscape-review/internal/repository/layerfs"
	"github.com/landscape-review/internal/repository/postgres"
	"github.com/landscape-review/internal/usecase"
)

// Core - собранные зависимости
type Core struct {
	DB    *postgres.DB // nil для файлового хранилища слоев
	Redis *cache.Redis // nil если REDIS_ENABLED=false

	Layers repository.LayerRepository

	LocationUC *usecase.LocationUseCase
	AnalysisUC *usecase.AnalysisUseCase
	LayerUC    *usecase.LayerUseCase

	logger *zap.Logger
}

// New подключает хранилища и собирает use cases. Close освобождает соединения
func New(cfg *config.Config, logger *zap.Logger) (*Core, error) {
	c := &Core{logger: logger}

	if cfg.Layers.Store == config.LayerStorePostgres {
		db, err := postgres.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.DB = db
		c.Layers = postgres.NewLayerRepository(db, cfg.Layers.Regions, logger)
	} else {
		c.Layers = layerfs.NewStore(cfg.Layers.Dir, logger)
	}

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, logger)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Redis = redisClient
	}

	vworldClient := vworld.NewClient(&cfg.VWorld, logger)

	var secondary repository.PlaceSearchProvider
	if cfg.Kakao.RESTKey != "" {
		secondary = kakao.NewClient(&cfg.Kakao, logger)
	} else {
		logger.Warn("KAKAO_REST_KEY is empty, secondary geocoder disabled")
	}

	var boundaries repository.BoundaryProvider = vworldClient
	if c.Redis != nil {
		boundaries = cache.NewCachedBoundaryProvider(
			vworldClient,
			cache.NewCacheRepository(c.Redis),
			cfg.Cache.BoundaryCacheTTL,
			logger,
		)
	}

	catalog := domain.NewCategoryCatalog(
		cfg.Layers.AreaCategories,
		cfg.Layers.PointCategories,
		cfg.Layers.NameKeys,
		cfg.Layers.GenericNameKeys,
	)

	addressResolver := usecase.NewAddressResolver(vworldClient, secondary, logger)
	boundaryResolver := usecase.NewBoundaryResolver(boundaries, cfg.Analysis.BBoxHalfWidthDeg, logger)
	analyzer := usecase.NewSpatialAnalyzer(c.Layers, catalog, logger)

	c.LocationUC = usecase.NewLocationUseCase(addressResolver, boundaryResolver, logger)
	c.AnalysisUC = usecase.NewAnalysisUseCase(analyzer, cfg.Analysis.DefaultRadiusKm, logger)
	c.LayerUC = usecase.NewLayerUseCase(c.Layers, logger)

	return c, nil
}

// Health проверяет подключенные хранилища
func (c *Core) Health(ctx context.Context) error {
	if c.DB != nil {
		if err := c.DB.Health(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Health(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// WarmUp читает инвентарь слоев. Ошибка не фатальна: слои перечитаются при первом запросе
func (c *Core) WarmUp(ctx context.Context) {
	inv, err := c.Layers.Reload(ctx)
	if err != nil {
		c.logger.Warn("Failed to load layer inventory", zap.Error(err))
		return
	}
	c.logger.Info("Layer inventory loaded", zap.Int("layers", inv.Count()))
}

// Close закрывает соединения
func (c *Core) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.logger.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}
}
