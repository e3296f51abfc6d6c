package layerfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/landscape-review/internal/domain"
	apperrors "github.com/landscape-review/internal/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const areaLayer = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"geometry": {"type": "Polygon", "coordinates": [[[126.8, 35.1], [126.9, 35.1], [126.9, 35.2], [126.8, 35.2], [126.8, 35.1]]]},
		"properties": {"name": "district"}
	}]
}`

const singleFeature = `{
	"type": "Feature",
	"geometry": {"type": "Point", "coordinates": [126.85, 35.15]},
	"properties": {"명칭": "viewpoint"}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "광주광역시", "경관지구", "A.geojson"), areaLayer)
	writeFile(t, filepath.Join(dir, "광주광역시", "경관지구", "broken.json"), `{"type": "FeatureCollection", "features": [`)
	writeFile(t, filepath.Join(dir, "광주광역시", "2040조망점", "points.json"), singleFeature)
	writeFile(t, filepath.Join(dir, "광주광역시", "2040조망점", "readme.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "README.md"), "ignored")
	return dir
}

func TestStore_ListLayers(t *testing.T) {
	store := NewStore(setupDir(t), zap.NewNop())

	inv, err := store.ListLayers(context.Background())
	require.NoError(t, err)

	require.Contains(t, inv, "광주광역시")
	districts := inv["광주광역시"]["경관지구"]
	require.Len(t, districts, 2)
	assert.Equal(t, domain.LayerEntry{Name: "A", File: "A.geojson", Exists: true}, districts[0])
	assert.Equal(t, domain.LayerEntry{Name: "broken", File: "broken.json", Exists: false}, districts[1])

	points := inv["광주광역시"]["2040조망점"]
	require.Len(t, points, 1)
	assert.Equal(t, "points", points[0].Name)
	assert.Equal(t, 3, inv.Count())
}

func TestStore_LoadLayer(t *testing.T) {
	store := NewStore(setupDir(t), zap.NewNop())
	ctx := context.Background()

	t.Run("area layer", func(t *testing.T) {
		fc, err := store.LoadLayer(ctx, domain.LayerRef{Region: "광주광역시", Category: "경관지구", File: "A.geojson"})
		require.NoError(t, err)
		require.Len(t, fc.Features, 1)
		_, ok := fc.Features[0].Geometry.(orb.Polygon)
		assert.True(t, ok)
	})

	t.Run("single feature is wrapped", func(t *testing.T) {
		fc, err := store.LoadLayer(ctx, domain.LayerRef{Region: "광주광역시", Category: "2040조망점", File: "points.json"})
		require.NoError(t, err)
		require.Len(t, fc.Features, 1)
		assert.Equal(t, orb.Point{126.85, 35.15}, fc.Features[0].Geometry)
	})

	t.Run("corrupted", func(t *testing.T) {
		_, err := store.LoadLayer(ctx, domain.LayerRef{Region: "광주광역시", Category: "경관지구", File: "broken.json"})
		assert.True(t, errors.Is(err, apperrors.ErrLayerCorrupted))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := store.LoadLayer(ctx, domain.LayerRef{Region: "전라남도", Category: "경관지구", File: "A.geojson"})
		assert.True(t, errors.Is(err, apperrors.ErrLayerNotFound))
	})

	t.Run("path traversal is just a missing key", func(t *testing.T) {
		_, err := store.LoadLayer(ctx, domain.LayerRef{Region: "..", Category: "..", File: "README.md"})
		assert.True(t, errors.Is(err, apperrors.ErrLayerNotFound))
	})
}

func TestStore_Reload(t *testing.T) {
	dir := setupDir(t)
	store := NewStore(dir, zap.NewNop())
	ctx := context.Background()

	_, err := store.ListLayers(ctx)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "전라남도", "경관구조", "B.geojson"), areaLayer)

	inv, err := store.ListLayers(ctx)
	require.NoError(t, err)
	assert.NotContains(t, inv, "전라남도")

	inv, err = store.Reload(ctx)
	require.NoError(t, err)
	assert.Contains(t, inv, "전라남도")

	_, err = store.LoadLayer(ctx, domain.LayerRef{Region: "전라남도", Category: "경관구조", File: "B.geojson"})
	assert.NoError(t, err)
}

func TestStore_ListedInventoryIsACopy(t *testing.T) {
	store := NewStore(setupDir(t), zap.NewNop())
	ctx := context.Background()

	inv, err := store.ListLayers(ctx)
	require.NoError(t, err)
	delete(inv, "광주광역시")

	again, err := store.ListLayers(ctx)
	require.NoError(t, err)
	assert.Contains(t, again, "광주광역시")
}

func TestStore_MissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"), zap.NewNop())

	_, err := store.ListLayers(context.Background())
	assert.Error(t, err)
}
