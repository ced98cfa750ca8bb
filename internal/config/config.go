package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config groups everything the server and the CLI read from the
// environment.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	DB       DBConfig
	Cache    CacheConfig
	NATS     NATSConfig
	Snapshot SnapshotConfig
	LowStock LowStockConfig
}

type AppConfig struct {
	Env      string `validate:"oneof=development staging production test"`
	LogLevel string `validate:"oneof=trace debug info warn error"`
	Version  string
}

type HTTPConfig struct {
	Addr            string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

type DBConfig struct {
	URL string `validate:"required"`
}

type CacheConfig struct {
	Backend       string `validate:"oneof=redis badger none"`
	RedisAddr     string `validate:"required_if=Backend redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`
	// BadgerDir empty keeps the badger cache in memory.
	BadgerDir string
}

// NATSConfig enables cross-instance cache invalidation when URL is set.
type NATSConfig struct {
	URL string `validate:"omitempty,url"`
}

type SnapshotConfig struct {
	Endpoint  string
	AccessKey string `validate:"required_with=Endpoint"`
	SecretKey string `validate:"required_with=Endpoint"`
	UseSSL    bool
	Bucket    string        `validate:"required_with=Endpoint"`
	Interval  time.Duration `validate:"gte=0"`
}

// Enabled reports whether snapshots have somewhere to go.
func (c SnapshotConfig) Enabled() bool {
	return c.Endpoint != ""
}

type LowStockConfig struct {
	Threshold int           `validate:"gte=0"`
	Interval  time.Duration `validate:"gte=0"`
}

func (c AppConfig) Development() bool {
	return c.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_VERSION", "v1")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("CACHE_BACKEND", "redis")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("SNAPSHOT_BUCKET", "inventory-snapshots")
	v.SetDefault("SNAPSHOT_INTERVAL", "24h")
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("LOW_STOCK_INTERVAL", "1h")
}

// keys lists every variable viper must look up in the environment; unset
// keys without a default are not found by AutomaticEnv alone.
var keys = []string{
	"APP_ENV", "LOG_LEVEL", "APP_VERSION",
	"HTTP_ADDR", "SHUTDOWN_TIMEOUT",
	"DATABASE_URL",
	"CACHE_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "BADGER_DIR",
	"NATS_URL",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_USE_SSL",
	"SNAPSHOT_BUCKET", "SNAPSHOT_INTERVAL",
	"LOW_STOCK_THRESHOLD", "LOW_STOCK_INTERVAL",
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first; variables already set win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	return v
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
			Version:  v.GetString("APP_VERSION"),
		},
		HTTP: HTTPConfig{
			Addr:            v.GetString("HTTP_ADDR"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(v.GetString("CACHE_BACKEND")),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			BadgerDir:     v.GetString("BADGER_DIR"),
		},
		NATS: NATSConfig{
			URL: v.GetString("NATS_URL"),
		},
		Snapshot: SnapshotConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("SNAPSHOT_BUCKET"),
			Interval:  v.GetDuration("SNAPSHOT_INTERVAL"),
		},
		LowStock: LowStockConfig{
			Threshold: v.GetInt("LOW_STOCK_THRESHOLD"),
			Interval:  v.GetDuration("LOW_STOCK_INTERVAL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, ", "))
}
