package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/landscape-review/internal/domain"
	apperrors "github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/metrics"
	"github.com/lib/pq"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type layerRow struct {
	Region   string `db:"region"`
	Category string `db:"category"`
	Name     string `db:"name"`
	File     string `db:"file"`
	HasData  bool   `db:"has_data"`
}

// LayerRepository - слои, хранящиеся в таблице landscape_layers (geojson в JSONB).
// Распарсенные коллекции кешируются в памяти до следующего Reload.
type LayerRepository struct {
	db      *DB
	regions []string
	logger  *zap.Logger

	mu          sync.RWMutex
	inventory   domain.LayerInventory
	collections map[string]*geojson.FeatureCollection
}

// NewLayerRepository создает хранилище слоев в PostgreSQL.
// Непустой regions ограничивает инвентарь перечисленными регионами
func NewLayerRepository(db *DB, regions []string, logger *zap.Logger) *LayerRepository {
	if regions == nil {
		regions = []string{}
	}
	return &LayerRepository{
		db:          db,
		regions:     regions,
		logger:      logger.Named("layers_pg"),
		inventory:   domain.LayerInventory{},
		collections: map[string]*geojson.FeatureCollection{},
	}
}

// ListLayers возвращает инвентарь, перечитывая таблицу если он пуст
func (r *LayerRepository) ListLayers(ctx context.Context) (domain.LayerInventory, error) {
	r.mu.RLock()
	inv := r.inventory
	r.mu.RUnlock()

	if len(inv) > 0 {
		return inv.Clone(), nil
	}
	r.logger.Warn("Layer inventory is empty, reloading")
	return r.Reload(ctx)
}

// Reload перечитывает инвентарь и сбрасывает кеш коллекций
func (r *LayerRepository) Reload(ctx context.Context) (domain.LayerInventory, error) {
	query := `
		SELECT region, category, name, file,
		       (geojson IS NOT NULL AND jsonb_typeof(geojson) = 'object') AS has_data
		FROM landscape_layers
		WHERE COALESCE(cardinality($1::text[]), 0) = 0 OR region = ANY($1::text[])
		ORDER BY region, category, file
	`

	var rows []layerRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(r.regions)); err != nil {
		r.logger.Error("Failed to list layers", zap.Error(err))
		return nil, apperrors.ErrDatabaseError.Wrap(fmt.Errorf("list layers: %w", err))
	}

	inv := domain.LayerInventory{}
	for _, row := range rows {
		if inv[row.Region] == nil {
			inv[row.Region] = map[string][]domain.LayerEntry{}
		}
		inv[row.Region][row.Category] = append(inv[row.Region][row.Category], domain.LayerEntry{
			Name:   row.Name,
			File:   row.File,
			Exists: row.HasData,
		})
	}

	r.mu.Lock()
	r.inventory = inv
	r.collections = map[string]*geojson.FeatureCollection{}
	r.mu.Unlock()

	metrics.LayersLoaded.Set(float64(len(rows)))
	r.logger.Info("Layers loaded", zap.Int("count", len(rows)))
	return inv.Clone(), nil
}

// LoadLayer читает и парсит geojson слоя
func (r *LayerRepository) LoadLayer(ctx context.Context, ref domain.LayerRef) (*geojson.FeatureCollection, error) {
	k := ref.String()
	r.mu.RLock()
	fc, ok := r.collections[k]
	r.mu.RUnlock()
	if ok {
		return fc, nil
	}

	details := map[string]interface{}{"region": ref.Region, "category": ref.Category, "file": ref.File}

	var raw []byte
	err := r.db.GetContext(ctx, &raw,
		`SELECT geojson FROM landscape_layers WHERE region = $1 AND category = $2 AND file = $3`,
		ref.Region, ref.Category, ref.File)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrLayerNotFound.WithDetails(details)
	}
	if err != nil {
		r.logger.Error("Failed to load layer", zap.String("layer", k), zap.Error(err))
		return nil, apperrors.ErrDatabaseError.Wrap(fmt.Errorf("load layer %s: %w", k, err))
	}
	if len(raw) == 0 {
		return nil, apperrors.ErrLayerCorrupted.WithDetails(details)
	}

	fc, err = geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, apperrors.ErrLayerCorrupted.WithDetails(details).Wrap(err)
	}

	r.mu.Lock()
	r.collections[k] = fc
	r.mu.Unlock()
	return fc, nil
}

// UpsertLayer сохраняет слой (используется импортом из каталога GeoJSON)
func (r *LayerRepository) UpsertLayer(ctx context.Context, ref domain.LayerRef, fc *geojson.FeatureCollection) error {
	raw, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal layer %s: %w", ref, err)
	}

	name := ref.Name
	if name == "" {
		name = ref.File
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO landscape_layers (region, category, name, file, geojson, updated_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, NOW())
		ON CONFLICT (region, category, file)
		DO UPDATE SET name = EXCLUDED.name, geojson = EXCLUDED.geojson, updated_at = NOW()
	`, ref.Region, ref.Category, name, ref.File, string(raw))
	if err != nil {
		r.logger.Error("Failed to upsert layer", zap.String("layer", ref.String()), zap.Error(err))
		return apperrors.ErrDatabaseError.Wrap(fmt.Errorf("upsert layer %s: %w", ref, err))
	}

	r.mu.Lock()
	delete(r.collections, ref.String())
	r.mu.Unlock()
	return nil
}
