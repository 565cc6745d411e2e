// Package main is the entry point for the CoffeeSmile content API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffeesmile/internal/cache"
	"coffeesmile/internal/config"
	"coffeesmile/internal/database"
	"coffeesmile/internal/feed"
	"coffeesmile/internal/handlers"
	"coffeesmile/internal/router"
	"coffeesmile/internal/store"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	ctx := context.Background()

	// Connect to PostgreSQL.
	pool, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run pending migrations.
	if err := database.Migrate(pool); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, pool); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey when configured. The API runs uncached without it.
	var respCache *cache.ResponseCache
	if cfg.ValkeyAddr() != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		respCache = cache.NewResponseCache(valkeyClient)
	} else {
		slog.Warn("valkey not configured, response cache disabled")
	}

	// Initialize data stores.
	postStore := store.NewPostStore(pool)
	categoryStore := store.NewCategoryStore(pool)

	site := feed.Site{
		BaseURL:     cfg.SiteURL,
		Title:       cfg.SiteTitle,
		Description: cfg.SiteDescription,
		Language:    "pt-BR",
	}

	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_API_TOKEN not set, editorial surface is locked")
	}

	// Create handler groups with their dependencies. Outside development,
	// listing storage failures surface as errors instead of empty pages.
	publicHandlers := handlers.NewPublic(postStore, categoryStore, respCache, pool, site, !cfg.IsDev())
	adminHandlers := handlers.NewAdmin(postStore, categoryStore, respCache)

	// Set up the Chi router with all middleware and routes.
	writeLimiter := router.DefaultWriteLimiter()
	defer writeLimiter.Stop()
	r := router.New(publicHandlers, adminHandlers, cfg.AdminToken, writeLimiter)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
