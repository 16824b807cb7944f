package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/reviewlens/reviewlens/internal/adapter/embed"
	"github.com/reviewlens/reviewlens/internal/adapter/store"
	"github.com/reviewlens/reviewlens/internal/handler"
	"github.com/reviewlens/reviewlens/internal/middleware"
	"github.com/reviewlens/reviewlens/internal/service"
	"github.com/reviewlens/reviewlens/pkg/config"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	dataDir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		dataDir = cfg.DataDir
	}

	slog.Info("🚀 Starting ReviewLens",
		"port", cfg.Port,
		"data_dir", dataDir,
		"dimension", cfg.EmbeddingDimension,
	)

	// ── Stores ───────────────────────────────────────────────────────────
	vectorFile, err := store.OpenVectorFile(dataDir, cfg.EmbeddingDimension)
	if err != nil {
		slog.Error("failed to open vector file", "error", err)
		os.Exit(1)
	}
	defer vectorFile.Close()
	slog.Info("vector file open", "path", vectorFile.Path())

	reviewFile, err := store.OpenReviewFile(dataDir)
	if err != nil {
		slog.Error("failed to open review file", "error", err)
		os.Exit(1)
	}
	defer reviewFile.Close()
	slog.Info("review file open", "path", reviewFile.Path())

	auditFile, err := store.OpenAuditFile(dataDir)
	if err != nil {
		slog.Error("failed to open audit file", "error", err)
		os.Exit(1)
	}
	defer auditFile.Close()

	// ── Embedder ─────────────────────────────────────────────────────────
	embedder := embed.NewTFIDFEmbedder(cfg.EmbeddingDimension)

	// ── Services ─────────────────────────────────────────────────────────
	ingestService := service.NewIngestService(embedder, vectorFile, reviewFile)
	searchService := service.NewSearchService(embedder, vectorFile, reviewFile, cfg.MaxTopK, cfg.DefaultTopK)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	// Audit middleware (logs all requests)
	app.Use(middleware.AuditMiddleware(auditFile))

	// Health check
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	// ── Routes ───────────────────────────────────────────────────────────
	reviewHandler := handler.NewReviewHandler(ingestService)
	reviewHandler.Register(app)

	searchHandler := handler.NewSearchHandler(searchService)
	searchHandler.Register(app)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
