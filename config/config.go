package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr     = ":8080"
	DefaultDSN      = ":memory:"
	DefaultLogLevel = "info"
)

// Config struct to hold the configuration settings
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig holds the SQLite DSN for the session store.
type StoreConfig struct {
	DSN string `yaml:"dsn"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// LoadConfig loads the configuration from a YAML file. A missing file is not
// an error: defaults and environment variables are used instead.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BUMPS_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("BUMPS_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("BUMPS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("BUMPS_LOG_PRETTY"); v != "" {
		cfg.Log.Pretty = v == "true"
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Store.DSN == "" {
		cfg.Store.DSN = DefaultDSN
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
