package layerfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/landscape-review/internal/domain"
	apperrors "github.com/landscape-review/internal/pkg/errors"
	"github.com/landscape-review/internal/metrics"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const parseConcurrency = 8

// Store - слои из каталога GEOJSON_DIR/<region>/<category>/<file>.geojson|.json,
// загруженные целиком в память. Загруженные коллекции не изменяются.
type Store struct {
	dir    string
	logger *zap.Logger

	mu        sync.RWMutex
	inventory domain.LayerInventory
	data      map[string]*geojson.FeatureCollection

	reloadMu sync.Mutex
}

// NewStore создает файловое хранилище слоев. Загрузка ленивая: при первом обращении или по Reload
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{
		dir:       dir,
		logger:    logger.Named("layerfs"),
		inventory: domain.LayerInventory{},
		data:      map[string]*geojson.FeatureCollection{},
	}
}

// ListLayers возвращает инвентарь, перезагружая его если он пуст
func (s *Store) ListLayers(ctx context.Context) (domain.LayerInventory, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventory.Clone(), nil
}

// LoadLayer возвращает коллекцию слоя из памяти
func (s *Store) LoadLayer(ctx context.Context, ref domain.LayerRef) (*geojson.FeatureCollection, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	fc, ok := s.data[key(ref.Region, ref.Category, ref.File)]
	entry, listed := findEntry(s.inventory, ref)
	s.mu.RUnlock()

	if ok {
		return fc, nil
	}
	details := map[string]interface{}{"region": ref.Region, "category": ref.Category, "file": ref.File}
	if listed && !entry.Exists {
		return nil, apperrors.ErrLayerCorrupted.WithDetails(details)
	}
	return nil, apperrors.ErrLayerNotFound.WithDetails(details)
}

// Reload перечитывает каталог и атомарно заменяет инвентарь и данные
func (s *Store) Reload(ctx context.Context) (domain.LayerInventory, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	return s.reload(ctx)
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	empty := len(s.inventory) == 0
	s.mu.RUnlock()
	if !empty {
		return nil
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	// другой вызов мог уже загрузить данные
	s.mu.RLock()
	empty = len(s.inventory) == 0
	s.mu.RUnlock()
	if !empty {
		return nil
	}

	s.logger.Warn("Layer inventory is empty, reloading", zap.String("dir", s.dir))
	_, err := s.reload(ctx)
	return err
}

type layerFile struct {
	region   string
	category string
	file     string
	path     string
}

func (s *Store) reload(ctx context.Context) (domain.LayerInventory, error) {
	files, err := s.scan()
	if err != nil {
		return nil, err
	}

	collections := make([]*geojson.FeatureCollection, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fc, err := readCollection(f.path)
			if err != nil {
				s.logger.Error("Failed to read layer file",
					zap.String("path", f.path),
					zap.Error(err))
				return nil
			}
			collections[i] = fc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("layer reload cancelled: %w", err)
	}

	inventory := domain.LayerInventory{}
	data := make(map[string]*geojson.FeatureCollection, len(files))
	for i, f := range files {
		if inventory[f.region] == nil {
			inventory[f.region] = map[string][]domain.LayerEntry{}
		}
		inventory[f.region][f.category] = append(inventory[f.region][f.category], domain.LayerEntry{
			Name:   layerName(f.file),
			File:   f.file,
			Exists: collections[i] != nil,
		})
		if collections[i] != nil {
			data[key(f.region, f.category, f.file)] = collections[i]
		}
	}

	s.mu.Lock()
	s.inventory = inventory
	s.data = data
	s.mu.Unlock()

	metrics.LayersLoaded.Set(float64(len(files)))
	s.logger.Info("Layers loaded",
		zap.String("dir", s.dir),
		zap.Int("files", len(files)),
		zap.Int("parsed", len(data)))

	return inventory.Clone(), nil
}

// scan обходит два уровня каталогов; нечитаемые подкаталоги пропускаются
func (s *Store) scan() ([]layerFile, error) {
	regions, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error("Failed to read layers directory", zap.String("dir", s.dir), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(fmt.Errorf("failed to read layers directory: %w", err))
	}

	var files []layerFile
	for _, region := range regions {
		if !region.IsDir() {
			continue
		}
		regionPath := filepath.Join(s.dir, region.Name())
		categories, err := os.ReadDir(regionPath)
		if err != nil {
			s.logger.Warn("Failed to read region directory", zap.String("path", regionPath), zap.Error(err))
			continue
		}
		for _, category := range categories {
			if !category.IsDir() {
				continue
			}
			categoryPath := filepath.Join(regionPath, category.Name())
			entries, err := os.ReadDir(categoryPath)
			if err != nil {
				s.logger.Warn("Failed to read category directory", zap.String("path", categoryPath), zap.Error(err))
				continue
			}
			for _, e := range entries {
				if e.IsDir() || !isLayerFile(e.Name()) {
					continue
				}
				files = append(files, layerFile{
					region:   region.Name(),
					category: category.Name(),
					file:     e.Name(),
					path:     filepath.Join(categoryPath, e.Name()),
				})
			}
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return key(files[i].region, files[i].category, files[i].file) < key(files[j].region, files[j].category, files[j].file)
	})
	return files, nil
}

// readCollection читает FeatureCollection; одиночный Feature оборачивается в коллекцию
func readCollection(path string) (*geojson.FeatureCollection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err == nil && fc.Type == "FeatureCollection" {
		return fc, nil
	}

	f, ferr := geojson.UnmarshalFeature(raw)
	if ferr == nil && f.Type == "Feature" {
		out := geojson.NewFeatureCollection()
		out.Append(f)
		return out, nil
	}

	if err == nil {
		err = fmt.Errorf("unsupported geojson type %q", fc.Type)
	}
	return nil, err
}

func isLayerFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".geojson" || ext == ".json"
}

func layerName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}

func key(region, category, file string) string {
	return region + "/" + category + "/" + file
}

func findEntry(inv domain.LayerInventory, ref domain.LayerRef) (domain.LayerEntry, bool) {
	for _, e := range inv[ref.Region][ref.Category] {
		if e.File == ref.File {
			return e, true
		}
	}
	return domain.LayerEntry{}, false
}
