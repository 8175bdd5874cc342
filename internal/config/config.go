package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config is the full service configuration.
type Config struct {
	Service  ServiceConfig  `koanf:"service"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	NATS     NATSConfig     `koanf:"nats"`
	Storage  StorageConfig  `koanf:"storage"`
	Logger   LoggerConfig   `koanf:"logger"`
}

// ServiceConfig contains service metadata.
type ServiceConfig struct {
	Name        string        `koanf:"name"`
	Environment string        `koanf:"environment"`
	Port        int           `koanf:"port"`
	Shutdown    time.Duration `koanf:"shutdown"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	User         string        `koanf:"user"`
	Password     string        `koanf:"password"`
	Database     string        `koanf:"database"`
	SSLMode      string        `koanf:"ssl_mode"`
	MaxOpenConns int           `koanf:"max_open_conns"`
	MaxIdleConns int           `koanf:"max_idle_conns"`
	MaxLifetime  time.Duration `koanf:"max_lifetime"`
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// RedisConfig contains Redis connection settings. When Enabled is false the
// service falls back to the in-memory cache.
type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

// Addr returns the host:port address.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NATSConfig contains NATS JetStream settings for the outbox relay.
type NATSConfig struct {
	Enabled       bool   `koanf:"enabled"`
	URL           string `koanf:"url"`
	Stream        string `koanf:"stream"`
	SubjectPrefix string `koanf:"subject_prefix"`
}

// StorageConfig selects the cover image store.
type StorageConfig struct {
	Driver    string   `koanf:"driver"` // local or s3
	LocalPath string   `koanf:"local_path"`
	S3        S3Config `koanf:"s3"`
}

// S3Config contains S3 settings for cover image storage.
type S3Config struct {
	Bucket string `koanf:"bucket"`
	Region string `koanf:"region"`
	Prefix string `koanf:"prefix"`
}

// LoggerConfig contains logging settings.
type LoggerConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        "catalog",
			Environment: "development",
			Port:        8080,
			Shutdown:    30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         5432,
			User:         "estante",
			Password:     "estante",
			Database:     "estante",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,
		},
		Redis: RedisConfig{
			Host:   "localhost",
			Port:   6379,
			Prefix: "estante",
		},
		NATS: NATSConfig{
			URL:           "nats://localhost:4222",
			Stream:        "CATALOG",
			SubjectPrefix: "catalog",
		},
		Storage: StorageConfig{
			Driver:    "local",
			LocalPath: "data/covers",
		},
		Logger: LoggerConfig{
			Level:       "info",
			Development: true,
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.Database == "" {
		return errors.New("database host and name are required")
	}
	switch c.Storage.Driver {
	case "local":
		if c.Storage.LocalPath == "" {
			return errors.New("storage local_path is required for the local driver")
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return errors.New("storage s3 bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return errors.New("nats url is required when nats is enabled")
	}
	return nil
}

// Load reads configuration from defaults, then config files, then
// environment variables, later sources winning.
func Load(serviceName string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	for _, path := range configPaths(serviceName) {
		if err := loadFile(k, path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	prefix := strings.ToUpper(serviceName) + "_"
	err := k.Load(env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, prefix), "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", path)
	}
	return k.Load(file.Provider(path), parser)
}

func configPaths(serviceName string) []string {
	paths := []string{
		"config.yaml",
		fmt.Sprintf("configs/%s.yaml", serviceName),
	}
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		paths = append([]string{configPath}, paths...)
	}
	return paths
}
