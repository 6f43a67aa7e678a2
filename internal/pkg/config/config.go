package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends.
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"

	SessionsInStore = "store"
	SessionsInRedis = "redis"
)

type Config struct {
	Port       string        `env:"PORT,       default=8080"`
	Env        string        `env:"ENV,        default=development"`
	JWTSecret  string        `env:"JWT_SECRET, required"`
	LogLevel   string        `env:"LOG_LEVEL,  default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=8h"`

	StoreBackend   string `env:"STORE_BACKEND,   default=sqlite"`
	SessionBackend string `env:"SESSION_BACKEND, default=store"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SQLite SQLiteConfig
	Admin  AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=stackoverflow"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,       default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,  default=5s"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=stackoverflow.db"`
}

// AdminConfig describes the bootstrap admin. It is skipped when Username is empty.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMongo, StoreSQLite:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreMongo, StoreSQLite, c.StoreBackend)
	}
	switch c.SessionBackend {
	case SessionsInStore, SessionsInRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q", SessionsInStore, SessionsInRedis, c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.Admin.Username != "" && (c.Admin.Email == "" || c.Admin.Password == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required with ADMIN_USERNAME")
	}
	return nil
}
