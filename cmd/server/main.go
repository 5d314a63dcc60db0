package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/db"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/seed"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/web"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

const version = "1.0.0"

func main() {
	// .env.local is a development convenience; production sets variables directly
	if os.Getenv("ENV") != "production" {
		if _, err := config.LoadEnvFile(config.DefaultEnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", config.DefaultEnvFile, err)
			os.Exit(1)
		}
	}

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"store_driver", cfg.Store.Driver,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	// Initialize repositories
	repo, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		log.Error("failed to open product store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Initialize services
	catalogService := service.NewCatalogService(repo, cfg.Catalog.Featured, log)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Error("failed to load page templates", "error", err)
		os.Exit(1)
	}

	r := newRouter(routerDeps{
		service:    catalogService,
		store:      repo,
		renderer:   renderer,
		categories: cfg.Catalog.Categories,
		logger:     log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStore builds the configured repository. The memory driver starts with
// the sample products so the storefront can run without a database.
func openStore(ctx context.Context, cfg config.StoreConfig, log *slog.Logger) (repository.ProductRepository, func(), error) {
	if cfg.Driver == config.StoreDriverMemory {
		repo := repository.NewInMemoryProductRepository()
		if _, err := seed.NewSeeder(repo, log).Run(ctx, seed.SampleProducts()); err != nil {
			return nil, nil, err
		}
		return repo, func() {}, nil
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return nil, nil, err
	}

	pool, err := db.Open(ctx, db.Options{DSN: dsn, MaxOpenConns: cfg.MaxConns})
	if err != nil {
		return nil, nil, err
	}
	log.Info("database connection established")

	return repository.NewPostgresProductRepository(pool), func() { closePool(pool, log) }, nil
}

func closePool(pool *sql.DB, log *slog.Logger) {
	if err := pool.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
}
