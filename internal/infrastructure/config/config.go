package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend         BackendConfig
	Session         SessionConfig
	Recommendations RecommendationConfig
	Store           StoreConfig
	Mongo           MongoConfig
	Redis           RedisConfig

	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL, default=5m"`
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:8080"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	SignUpAutoLogin    bool          `env:"SIGNUP_AUTO_LOGIN,    default=false"`
	LockoutMaxAttempts int           `env:"LOCKOUT_MAX_ATTEMPTS, default=3"`
	LockoutWindow      time.Duration `env:"LOCKOUT_WINDOW,       default=30m"`
}

type RecommendationConfig struct {
	Limit         int           `env:"RECOMMENDATION_LIMIT, default=5"`
	LocateTimeout time.Duration `env:"LOCATE_TIMEOUT,       default=5s"`
	HomeLat       *float64      `env:"HOME_LAT, noinit"`
	HomeLng       *float64      `env:"HOME_LNG, noinit"`
}

type StoreConfig struct {
	Driver     string `env:"STORE_DRIVER,     default=file"`
	Dir        string `env:"STORE_DIR"`
	Passphrase string `env:"STORE_PASSPHRASE"`
	Namespace  string `env:"STORE_NAMESPACE,  default=default"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=healthyaura_client"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Production reports whether logs should be plain JSON.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads a .env file when present, then the environment. It panics on
// malformed values.
func Load(log zerolog.Logger) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}
	cfg, err := Process(context.Background(), envconfig.OsLookuper())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		panic(err)
	}
	return cfg
}

// Process resolves the configuration from lookuper and fills derived
// defaults.
func Process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case DriverFile, DriverMemory, DriverRedis, DriverMongo:
	default:
		return nil, errors.New("STORE_DRIVER must be one of: file memory redis mongo")
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = defaultStoreDir()
	}
	if cfg.Session.LockoutMaxAttempts <= 0 {
		return nil, errors.New("LOCKOUT_MAX_ATTEMPTS must be positive")
	}
	return &cfg, nil
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healthyaura"
	}
	return filepath.Join(home, ".healthyaura")
}
