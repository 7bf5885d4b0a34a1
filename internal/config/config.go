package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the contents of retodfa.yaml.
type Config struct {
	LogLevel string  `yaml:"log_level"`
	Server   Server  `yaml:"server"`
	Metrics  Metrics `yaml:"metrics"`
	Cache    Cache   `yaml:"cache"`
	Limits   Limits  `yaml:"limits"`
}

type Server struct {
	Addr string `yaml:"addr"`
	// MaxBodyBytes bounds request bodies; 0 disables it.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type Metrics struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Cache selects where converted documents are kept: "none", "memory" or
// "redis".
type Cache struct {
	Backend string        `yaml:"backend"`
	TTL     time.Duration `yaml:"ttl"`
	// MaxEntries bounds the memory backend; 0 means unbounded.
	MaxEntries int   `yaml:"max_entries"`
	Redis      Redis `yaml:"redis"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type Limits struct {
	// MaxExpressionLength bounds the raw expression in bytes; 0 disables it.
	MaxExpressionLength int `yaml:"max_expression_length"`
	// MaxDFAStates aborts subset construction past this many states; 0
	// disables it.
	MaxDFAStates int `yaml:"max_dfa_states"`
}

const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server:   Server{Addr: ":8080", MaxBodyBytes: 1 << 20},
		Metrics:  Metrics{Enabled: true, Path: "/metrics"},
		Cache: Cache{
			Backend:    CacheMemory,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
			Redis:      Redis{Addr: "localhost:6379", Prefix: "retodfa:dfa:"},
		},
		Limits: Limits{MaxExpressionLength: 4096, MaxDFAStates: 10000},
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error:
// the defaults are returned as they are.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return errors.New("cache.max_entries must not be negative")
	}
	if c.Limits.MaxExpressionLength < 0 {
		return errors.New("limits.max_expression_length must not be negative")
	}
	if c.Limits.MaxDFAStates < 0 {
		return errors.New("limits.max_dfa_states must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes must not be negative")
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return errors.New("metrics.path is required when metrics are enabled")
	}
	return nil
}
