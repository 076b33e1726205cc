// Package main is the entry point for the scan surface API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/prinzana/sellyticsOffline-sub002/internal/core/id"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/catalog/product"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/sales/sold"
	"github.com/prinzana/sellyticsOffline-sub002/internal/domain/scan"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/cache"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/config"
	v1 "github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/http/v1"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/storage/postgres"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/storage/postgres/product_repo"
	"github.com/prinzana/sellyticsOffline-sub002/internal/infrastructure/storage/postgres/sales_repo"
	"github.com/prinzana/sellyticsOffline-sub002/pkg/logger"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting sellytics scan server")

	storeID, err := id.Parse(cfg.StoreID)
	if err != nil {
		log.Fatalw("STORE_ID must be a valid uuid", "error", err)
	}

	// --- Database connection ---
	if cfg.DatabaseURL == "" {
		log.Fatalw("DATABASE_URL is required")
	}
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")
	postgres.LogPoolStats(ctx, pool.Pool)

	// --- Redis (sold-identifier cache) ---
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unavailable, sold checks will hit postgres directly", "error", err)
	}

	// --- Lookup collaborators ---
	productRepo := product_repo.NewRepo(pool.Pool)
	soldRepo := sales_repo.NewSoldRepo(pool.Pool)
	cachedSold := cache.NewSoldCache(redisClient, soldRepo, log)

	productService := product.NewService(productRepo)
	soldService := sold.NewService(cachedSold)

	// --- Scan core ---
	resolver := scan.NewResolver(productService, soldService)
	sessions := scan.NewManager(func(terminalID string) *scan.Session {
		return scan.NewSession(storeID, resolver,
			scan.WithLogger(log.WithComponent("scan_session").With("terminal_id", terminalID)),
		)
	})

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:   log,
		Sessions: sessions,
		Products: productService,
		StoreID:  storeID,
		Dev:      cfg.IsDevelopment(),
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Infow("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
