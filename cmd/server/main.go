package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/baokaotong/baokao-backend/internal/catalog"
	"github.com/baokaotong/baokao-backend/internal/config"
	"github.com/baokaotong/baokao-backend/internal/database"
	"github.com/baokaotong/baokao-backend/internal/enrich"
	"github.com/baokaotong/baokao-backend/internal/handler"
	"github.com/baokaotong/baokao-backend/internal/llm"
	"github.com/baokaotong/baokao-backend/internal/logger"
	"github.com/baokaotong/baokao-backend/internal/repository"
	"github.com/baokaotong/baokao-backend/internal/router"
	"github.com/baokaotong/baokao-backend/internal/service"
	"github.com/baokaotong/baokao-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	if err := cfg.RequireModelKey(); err != nil {
		// Logger is not up yet; this is the fail-fast path for missing
		// required secrets.
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("model", cfg.ChatModel).
		Msg("Starting Baokao Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Load Catalog Index ────────────────────────────────────────────
	// Parsed once at startup and shared read-only across requests.
	index, err := catalog.NewIndex(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("Failed to load major catalog")
	}
	log.Info().Int("majors", index.Len()).Msg("Catalog index loaded")

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Model Client ───────────────────────────────────────
	client := llm.NewDeepSeek(cfg)
	generator := enrich.NewGenerator(client, log)

	// ─── Initialize Repositories ───────────────────────────────────────
	catalogRepo := repository.NewCatalogRepository(pool)
	enrichmentRepo := repository.NewEnrichmentRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	catalogService := service.NewCatalogService(catalogRepo, rdb, log)
	detailService := service.NewMajorDetailService(enrichmentRepo, index, generator, client, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService),
		Major:   handler.NewMajorHandler(detailService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
