// Package main is the entry point for the Chronicle server. It loads
// configuration, connects to services, sets up routing, and starts the HTTP
// server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"chronicle/internal/book"
	"chronicle/internal/cache"
	"chronicle/internal/config"
	"chronicle/internal/database"
	"chronicle/internal/handlers"
	"chronicle/internal/middleware"
	"chronicle/internal/router"
	"chronicle/internal/storage"
	"chronicle/internal/store"
)

func main() {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. The cache is optional: list responses go uncached
	// and compile jobs become fire-and-forget when it is absent.
	var respCache *cache.ResponseCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable — response caching disabled", "error", err)
		valkeyClient = nil
	} else {
		defer valkeyClient.Close()
		respCache = cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	}

	// Initialize data stores.
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	imageStore := store.NewImageStore(db)
	manuscriptStore := store.NewManuscriptStore(db)
	sectionStore := store.NewSectionStore(db)
	snapshotStore := store.NewSnapshotStore(db)
	commentStore := store.NewCommentStore(db)
	collectionStore := store.NewCollectionStore(db)
	goalStore := store.NewGoalStore(db)
	sessionStore := store.NewSessionStore(db)
	researchStore := store.NewResearchStore(db)
	cacheLogStore := store.NewCacheLogStore(db)

	// Connect to S3-compatible object storage (optional — compiled books
	// stay local-only without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
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
	} else {
		slog.Warn("s3 storage not configured — compiled books stored locally only")
	}

	// Book pipeline.
	compiler := book.NewCompiler(postStore, sectionStore)
	pdf := book.NewPDFProducer(cfg.ChromePath)

	// Create handler groups with their dependencies.
	h := &router.Handlers{
		Posts:       handlers.NewPosts(postStore, imageStore, respCache, cacheLogStore),
		Taxonomy:    handlers.NewTaxonomy(categoryStore, tagStore),
		Images:      handlers.NewImages(imageStore, postStore),
		Manuscripts: handlers.NewManuscripts(manuscriptStore, sectionStore, cacheLogStore),
		Sections:    handlers.NewSections(sectionStore, manuscriptStore, snapshotStore, commentStore),
		Collections: handlers.NewCollections(collectionStore, sectionStore),
		Tracking:    handlers.NewTracking(goalStore, sessionStore),
		Research:    handlers.NewResearch(researchStore),
		Compile:     handlers.NewCompile(compiler, pdf, cfg.BooksDir, cfg.PublicURL, respCache, storageClient),
		Health:      handlers.NewHealth(db, valkeyClient),
	}

	// Compilation launches a headless browser per request, so it gets a
	// tight per-client budget.
	limiter := middleware.NewRateLimiter(5, time.Minute)
	defer limiter.Stop()

	r := router.New(h, limiter, cfg.CORSOrigins, cfg.BooksDir, cfg.PublicURL)

	// WriteTimeout must accommodate PDF printing, which can take up to two
	// minutes for large books.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
