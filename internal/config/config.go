package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	VWorld   VWorldConfig
	Kakao    KakaoConfig
	Layers   LayersConfig
	Analysis AnalysisConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	BoundaryCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// VWorldConfig - основной геокодер и источник границ участков
type VWorldConfig struct {
	BaseURL        string
	APIKey         string
	Domain         string
	AddressTimeout time.Duration
	WFSTimeout     time.Duration
	RateLimit      float64 // запросов в секунду, 0 - без ограничения
}

// KakaoConfig - вторичный геокодер
type KakaoConfig struct {
	BaseURL string
	RESTKey string
	Timeout time.Duration
}

// LayersConfig - хранилище слоев и каталог категорий
type LayersConfig struct {
	Store           string // file | postgres
	Dir             string
	Regions         []string // фильтр регионов для postgres, пусто - все
	AreaCategories  []string
	PointCategories []string
	NameKeys        map[string]string
	GenericNameKeys []string
}

type AnalysisConfig struct {
	DefaultRadiusKm  float64
	BBoxHalfWidthDeg float64
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

const (
	LayerStoreFile     = "file"
	LayerStorePostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("API_CORS_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("BOUNDARY_CACHE_TTL", 86400)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("VWORLD_BASE_URL", "https://api.vworld.kr")
	v.SetDefault("VWORLD_ADDRESS_TIMEOUT", 5000)
	v.SetDefault("VWORLD_WFS_TIMEOUT", 10000)
	v.SetDefault("VWORLD_RATE_LIMIT", 0)

	v.SetDefault("KAKAO_BASE_URL", "https://dapi.kakao.com")
	v.SetDefault("KAKAO_TIMEOUT", 5000)

	v.SetDefault("LAYER_STORE", LayerStoreFile)
	v.SetDefault("GEOJSON_DIR", "./geojson")
	v.SetDefault("LAYER_AREA_CATEGORIES", "경관구조,중점경관관리구역,경관지구")
	v.SetDefault("LAYER_POINT_CATEGORIES", "경관거점,2040조망점")
	v.SetDefault("LAYER_NAME_KEYS", "경관거점:거점명,2040조망점:명칭")
	v.SetDefault("LAYER_GENERIC_NAME_KEYS", "name,NAME")

	v.SetDefault("ANALYSIS_DEFAULT_RADIUS_KM", 3.0)
	v.SetDefault("ANALYSIS_BBOX_HALF_WIDTH", 0.005)

	v.SetDefault("WORKER_ENABLED", true)
	v.SetDefault("WORKER_CONSUMER_GROUP", "landscape-analysis-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 1000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile - то же с явным путем к env-файлу
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			BoundaryCacheTTL: time.Duration(v.GetInt("BOUNDARY_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		VWorld: VWorldConfig{
			BaseURL:        strings.TrimRight(v.GetString("VWORLD_BASE_URL"), "/"),
			APIKey:         v.GetString("VWORLD_API_KEY"),
			Domain:         v.GetString("VWORLD_DOMAIN"),
			AddressTimeout: time.Duration(v.GetInt("VWORLD_ADDRESS_TIMEOUT")) * time.Millisecond,
			WFSTimeout:     time.Duration(v.GetInt("VWORLD_WFS_TIMEOUT")) * time.Millisecond,
			RateLimit:      v.GetFloat64("VWORLD_RATE_LIMIT"),
		},
		Kakao: KakaoConfig{
			BaseURL: strings.TrimRight(v.GetString("KAKAO_BASE_URL"), "/"),
			RESTKey: v.GetString("KAKAO_REST_KEY"),
			Timeout: time.Duration(v.GetInt("KAKAO_TIMEOUT")) * time.Millisecond,
		},
		Layers: LayersConfig{
			Store:           strings.ToLower(v.GetString("LAYER_STORE")),
			Dir:             v.GetString("GEOJSON_DIR"),
			Regions:         parseList(v.GetString("LAYER_REGIONS")),
			AreaCategories:  parseList(v.GetString("LAYER_AREA_CATEGORIES")),
			PointCategories: parseList(v.GetString("LAYER_POINT_CATEGORIES")),
			NameKeys:        parsePairs(v.GetString("LAYER_NAME_KEYS")),
			GenericNameKeys: parseList(v.GetString("LAYER_GENERIC_NAME_KEYS")),
		},
		Analysis: AnalysisConfig{
			DefaultRadiusKm:  v.GetFloat64("ANALYSIS_DEFAULT_RADIUS_KM"),
			BBoxHalfWidthDeg: v.GetFloat64("ANALYSIS_BBOX_HALF_WIDTH"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	if cfg.Layers.Store != LayerStoreFile && cfg.Layers.Store != LayerStorePostgres {
		return nil, fmt.Errorf("unknown LAYER_STORE %q", cfg.Layers.Store)
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parsePairs разбирает "category:key,category:key"
func parsePairs(s string) map[string]string {
	result := make(map[string]string)
	for _, item := range parseList(s) {
		k, v, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			result[k] = v
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
