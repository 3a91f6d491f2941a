// ABOUTME: Main entry point for the indexer aggregator server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"indexer-aggregator-api/api"
	"indexer-aggregator-api/api/handlers"
	"indexer-aggregator-api/core/indexer"
	"indexer-aggregator-api/core/interfaces"
	"indexer-aggregator-api/core/manager"
	"indexer-aggregator-api/core/search"
	"indexer-aggregator-api/core/torznab"
	"indexer-aggregator-api/infrastructure/cache/memory"
	"indexer-aggregator-api/infrastructure/cache/redis"
	stdhttp "indexer-aggregator-api/infrastructure/http/standard"
	logruslogger "indexer-aggregator-api/infrastructure/logger/logrus"
	"indexer-aggregator-api/pkg/config"
	"indexer-aggregator-api/pkg/featureflags"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.New(logruslogger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	logger.Info("Starting indexer aggregator", map[string]interface{}{
		"address":    cfg.Server.Address(),
		"base_url":   cfg.Torznab.BaseURL,
		"cache_type": cfg.Cache.Type,
		"timeout":    cfg.Request.Timeout.String(),
	})

	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(cfg.Cache.Memory.CleanupInterval)
		} else {
			defer redisCache.Close()
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(cfg.Cache.Memory.CleanupInterval)
		logger.Info("Using memory cache", nil)
	}

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: stdhttp.NewStandardHTTPClient(cfg.Request.HTTPTimeout),
		Logger:     logger,
	}

	indexers, err := indexer.BuildAll(cfg.IndexerConfigs(), deps)
	if err != nil {
		log.Fatalf("Failed to build indexers: %v", err)
	}

	aggregator := manager.New(indexers, logger, cfg.Request.Timeout)

	emitter, err := torznab.NewEmitter(cfg.Torznab.Name, cfg.Torznab.Description, cfg.Torznab.BaseURL)
	if err != nil {
		log.Fatalf("Failed to create torznab emitter: %v", err)
	}

	flags := featureflags.NewEnvManager("FEATURE_")
	logger.Info("Feature flags", map[string]interface{}{
		"empty_query_feed": flags.IsEnabled(context.Background(), featureflags.EmptyQueryFeed),
		"cache_enabled":    flags.IsEnabled(context.Background(), featureflags.CacheEnabled),
	})

	searchService := search.NewService(aggregator, emitter, flags, deps, cfg.Cache.TTL)

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{Logger: logger})
	handlers.NewTorznabHandler(searchService, logger).RegisterRoutes(humaAPI)
	handlers.NewHealthHandler(aggregator).RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Request.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address":  srv.Addr,
			"indexers": aggregator.Indexers(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	logger.Info("Server stopped", nil)
}
