// Package main is the entry point for the Inkpress blog server.
// It loads configuration, opens the document store, connects optional
// services, sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkpress/internal/auth"
	"inkpress/internal/cache"
	"inkpress/internal/config"
	"inkpress/internal/handlers"
	"inkpress/internal/middleware"
	"inkpress/internal/router"
	"inkpress/internal/storage"
	"inkpress/internal/store"
)

func main() {
	// Structured logger for everything the server reports.
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
		"data_file", cfg.DataFile,
	)

	// Open the blog document store. A missing data file is seeded with
	// starter content on first load.
	st := store.NewJSONStore(cfg.DataFile)
	if _, err := st.Load(); err != nil {
		slog.Error("failed to open data file", "error", err, "path", cfg.DataFile)
		os.Exit(1)
	}

	// Connect to Valkey for the response cache (optional — the app serves
	// every request from the document store without it).
	var responseCache *cache.ResponseCache
	if cfg.ValkeyAddr != "" {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, running without response cache", "error", err)
		} else {
			defer valkeyClient.Close()
			responseCache = cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
			slog.Info("valkey connected", "addr", cfg.ValkeyAddr)
		}
	}

	// Connect to S3-compatible object storage (optional upload mirror).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	}

	tokens := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL)

	// Throttle credential guessing: 10 attempts per minute per client IP.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	// Create handler groups with their dependencies.
	h := router.Handlers{
		Auth:       handlers.NewAuth(st, tokens),
		Articles:   handlers.NewArticles(st, responseCache),
		Categories: handlers.NewCategories(st, responseCache),
		Comments:   handlers.NewComments(st, responseCache),
		Uploads:    handlers.NewUploads(cfg.UploadDir, storageClient),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(h, tokens, loginLimiter, cfg.CORSOrigins)

	// Create the HTTP server with sensible timeouts. ReadTimeout covers
	// the 5 MiB image uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
