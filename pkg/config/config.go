// ABOUTME: Configuration management backed by viper with environment and file sources
// ABOUTME: Defines configuration for the server, torznab identity, indexers, cache, requests and logging

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"indexer-aggregator-api/core/indexer"
)

// DefaultConfigFile is read when CONFIG_FILE is unset
const DefaultConfigFile = "./config.yaml"

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Torznab describes the aggregated indexer to clients
	Torznab TorznabConfig

	// Indexers lists the configured sites in registration order
	Indexers []IndexerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Request bounds outbound work
	Request RequestConfig

	// Log configures the logger
	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// Address returns host:port
func (s ServerConfig) Address() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// TorznabConfig holds the identity advertised in every document
type TorznabConfig struct {
	Name        string
	Description string
	BaseURL     string
}

// IndexerConfig is one entry of the indexers list
type IndexerConfig struct {
	Name    string `mapstructure:"name"`
	Type    string `mapstructure:"type"`
	BaseURL string `mapstructure:"base_url"`
	APIURL  string `mapstructure:"api_url"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// TTL is how long a rendered response stays cached
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged
	CleanupInterval time.Duration
}

// RequestConfig holds outbound request limits
type RequestConfig struct {
	// Timeout bounds one aggregated request, zero disables it
	Timeout time.Duration

	// HTTPTimeout bounds a single outbound HTTP call
	HTTPTimeout time.Duration
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
	// File enables rotating file output when set
	File string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "127.0.0.1")
	v.SetDefault("PORT", 3000)
	v.SetDefault("TORZNAB_NAME", "Indexer Aggregator")
	v.SetDefault("TORZNAB_DESCRIPTION", "Torznab aggregator of public torrent indexers")
	v.SetDefault("CACHE_TYPE", "memory")
	v.SetDefault("CACHE_TTL", 60)
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MEMORY_CACHE_CLEANUP", 300)
	v.SetDefault("REQUEST_TIMEOUT", 20)
	v.SetDefault("HTTP_TIMEOUT", 15)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_FILE", "")
}

// Load reads configuration from the environment, the optional config file
// and defaults, in that order of precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	path := v.GetString("CONFIG_FILE")
	if path == "" {
		path = DefaultConfigFile
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("HOST"),
			Port: v.GetInt("PORT"),
		},
		Torznab: TorznabConfig{
			Name:        v.GetString("TORZNAB_NAME"),
			Description: v.GetString("TORZNAB_DESCRIPTION"),
			BaseURL:     v.GetString("BASE_URL"),
		},
		Cache: CacheConfig{
			Type: v.GetString("CACHE_TYPE"),
			TTL:  seconds(v.GetInt("CACHE_TTL")),
			Redis: RedisConfig{
				Address:  v.GetString("REDIS_ADDRESS"),
				Password: v.GetString("REDIS_PASSWORD"),
				DB:       v.GetInt("REDIS_DB"),
			},
			Memory: MemoryConfig{
				CleanupInterval: seconds(v.GetInt("MEMORY_CACHE_CLEANUP")),
			},
		},
		Request: RequestConfig{
			Timeout:     seconds(v.GetInt("REQUEST_TIMEOUT")),
			HTTPTimeout: seconds(v.GetInt("HTTP_TIMEOUT")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			File:   v.GetString("LOG_FILE"),
		},
	}

	if cfg.Torznab.BaseURL == "" {
		cfg.Torznab.BaseURL = "http://" + cfg.Server.Address()
	}

	if err := v.UnmarshalKey("indexers", &cfg.Indexers); err != nil {
		return nil, fmt.Errorf("decoding indexers: %w", err)
	}
	if len(cfg.Indexers) == 0 {
		for _, def := range indexer.DefaultConfigs() {
			cfg.Indexers = append(cfg.Indexers, IndexerConfig{Name: def.Name, Type: string(def.Type)})
		}
	}
	for i := range cfg.Indexers {
		if cfg.Indexers[i].Name == "" {
			cfg.Indexers[i].Name = cfg.Indexers[i].Type
		}
	}

	return cfg, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// IndexerConfigs converts the indexers list for the indexer builder
func (c *Config) IndexerConfigs() []indexer.Config {
	out := make([]indexer.Config, len(c.Indexers))
	for i, ic := range c.Indexers {
		out[i] = indexer.Config{
			Name:    ic.Name,
			Type:    indexer.Kind(ic.Type),
			BaseURL: ic.BaseURL,
			APIURL:  ic.APIURL,
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Server.Port)
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache TTL must be positive")
	}

	if len(c.Indexers) == 0 {
		return errors.New("at least one indexer must be configured")
	}

	seen := make(map[string]bool, len(c.Indexers))
	for _, ic := range c.Indexers {
		if !indexer.Kind(ic.Type).IsKnown() {
			return fmt.Errorf("indexer %q has unknown type %q", ic.Name, ic.Type)
		}
		if seen[ic.Name] {
			return fmt.Errorf("indexer name %q is used more than once", ic.Name)
		}
		seen[ic.Name] = true
	}

	return nil
}
