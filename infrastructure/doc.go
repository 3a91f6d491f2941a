// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by patrickmn/go-cache
// - cache/redis: Redis-based cache implementation
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: logrus logger with optional rotating file output
//
// # Cache Implementations
//
// Memory Cache Example:
//
//	cache := memory.NewMemoryCache(5 * time.Minute)
//	err := cache.Set(ctx, "torznab:key", body, time.Minute)
//	value, err := cache.Get(ctx, "torznab:key")
//
// Redis Cache Example:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	})
//
// Both return interfaces.ErrCacheMiss for absent or expired keys.
//
// # HTTP Client
//
// Transport errors and 5xx responses are retried with exponential backoff:
//
//	client := standard.NewStandardHTTPClient(15 * time.Second)
//	resp, err := client.Get(ctx, "https://bitsearch.to/search?q=ubuntu")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := logrus.New(logrus.Options{Level: "info", Format: "json", File: "logs/app.log"})
//	logger.Info("Search completed", map[string]interface{}{
//	    "query":   "ubuntu",
//	    "entries": 42,
//	})
package infrastructure
