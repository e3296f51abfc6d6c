package usecase

import (
	"context"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/landscape-review/internal/domain"
	"github.com/landscape-review/internal/domain/repository"
	"github.com/landscape-review/internal/usecase/dto"
)

// LayerUseCase - инвентарь слоев и загрузка отдельных слоев
type LayerUseCase struct {
	layers repository.LayerRepository
	logger *zap.Logger
}

// NewLayerUseCase - создание LayerUseCase
func NewLayerUseCase(layers repository.LayerRepository, logger *zap.Logger) *LayerUseCase {
	return &LayerUseCase{
		layers: layers,
		logger: logger,
	}
}

// ListLayers - инвентарь region -> category -> слои
func (uc *LayerUseCase) ListLayers(ctx context.Context) (*dto.LayersResponse, error) {
	inv, err := uc.layers.ListLayers(ctx)
	if err != nil {
		uc.logger.Error("Failed to list layers", zap.Error(err))
		return nil, err
	}
	return &dto.LayersResponse{
		Layers: inv,
		Total:  inv.Count(),
	}, nil
}

// LoadLayer - FeatureCollection одного слоя
func (uc *LayerUseCase) LoadLayer(ctx context.Context, req dto.LoadLayerRequest) (*geojson.FeatureCollection, error) {
	ref := domain.LayerRef{
		Region:   req.Region,
		Category: req.Category,
		File:     req.File,
	}
	fc, err := uc.layers.LoadLayer(ctx, ref)
	if err != nil {
		uc.logger.Warn("Failed to load layer", zap.String("layer", ref.String()), zap.Error(err))
		return nil, err
	}
	return fc, nil
}

// Reload - перечитать источник слоев
func (uc *LayerUseCase) Reload(ctx context.Context) (*dto.ReloadLayersResponse, error) {
	inv, err := uc.layers.Reload(ctx)
	if err != nil {
		uc.logger.Error("Failed to reload layers", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Layers reloaded", zap.Int("total", inv.Count()))
	return &dto.ReloadLayersResponse{Total: inv.Count()}, nil
}
