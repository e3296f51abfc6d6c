package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.VWorld.AddressTimeout)
	assert.Equal(t, 10*time.Second, cfg.VWorld.WFSTimeout)
	assert.Equal(t, 5*time.Second, cfg.Kakao.Timeout)
	assert.Equal(t, LayerStoreFile, cfg.Layers.Store)
	assert.Equal(t, []string{"경관구조", "중점경관관리구역", "경관지구"}, cfg.Layers.AreaCategories)
	assert.Equal(t, []string{"경관거점", "2040조망점"}, cfg.Layers.PointCategories)
	assert.Equal(t, map[string]string{"경관거점": "거점명", "2040조망점": "명칭"}, cfg.Layers.NameKeys)
	assert.Equal(t, []string{"name", "NAME"}, cfg.Layers.GenericNameKeys)
	assert.Equal(t, 3.0, cfg.Analysis.DefaultRadiusKm)
	assert.Equal(t, 0.005, cfg.Analysis.BBoxHalfWidthDeg)
	assert.Equal(t, 24*time.Hour, cfg.Cache.BoundaryCacheTTL)
	assert.Equal(t, "landscape-analysis-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, time.Second, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, "*", cfg.Server.CORSOrigins)
}

func TestLoadFile_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nVWORLD_API_KEY=file-key\nGEOJSON_DIR=/data/geojson\nVWORLD_BASE_URL=http://localhost:1234/\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("VWORLD_API_KEY", "env-key")
	t.Setenv("LAYER_STORE", "POSTGRES")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.VWorld.APIKey)
	assert.Equal(t, "/data/geojson", cfg.Layers.Dir)
	assert.Equal(t, "http://localhost:1234", cfg.VWorld.BaseURL)
	assert.Equal(t, LayerStorePostgres, cfg.Layers.Store)
}

func TestLoadFile_UnknownStore(t *testing.T) {
	t.Setenv("LAYER_STORE", "s3")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestParsePairs(t *testing.T) {
	got := parsePairs(" a : x ,broken, b:y,:z,c:")
	assert.Equal(t, map[string]string{"a": "x", "b": "y"}, got)
	assert.Empty(t, parsePairs(""))
}

func TestConfigAddrs(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
		Redis:    RedisConfig{Host: "redis", Port: 6379},
		Database: DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "layers", SSLMode: "disable"},
	}

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddr())
	assert.Equal(t, "redis:6379", cfg.GetRedisAddr())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=layers sslmode=disable", cfg.GetDatabaseDSN())
}
