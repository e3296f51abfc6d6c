package repository

import (
	"context"

	"github.com/landscape-review/internal/domain"
	"github.com/paulmach/orb/geojson"
)

// LayerRepository - хранилище слоев ландшафтного плана (только чтение для анализа)
type LayerRepository interface {
	// ListLayers возвращает инвентарь region -> category -> слои
	ListLayers(ctx context.Context) (domain.LayerInventory, error)

	// LoadLayer возвращает коллекцию объектов слоя.
	// ErrLayerNotFound если слоя нет, ErrLayerCorrupted если данные не читаются
	LoadLayer(ctx context.Context, ref domain.LayerRef) (*geojson.FeatureCollection, error)

	// Reload перечитывает инвентарь из источника
	Reload(ctx context.Context) (domain.LayerInventory, error)
}
