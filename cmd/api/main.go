package main

import (
	"fmt"
	"log/slog"
	"os"

	"extraction-api/internal/adapter/repository/sqlite"
	"extraction-api/internal/delivery/http/handler"
	"extraction-api/internal/usecase/extraction"
	"extraction-api/pkg/config"
	"extraction-api/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()
	appLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// connect to database
	db, err := database.Connect(cfg.DatabasePath)
	if err != nil {
		appLogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := sqlite.EnsureSchema(db); err != nil {
		appLogger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	appLogger.Info("database initialized", "path", cfg.DatabasePath)

	// initialize repository and usecase
	repo := sqlite.NewExtractionRepository(db)
	uc := extraction.NewExtractionUsecase(repo, appLogger, cfg.DefaultPerPage, cfg.MaxPerPage)

	// initialize handlers
	extractionHandler := handler.NewExtractionHandler(uc, appLogger)
	exportHandler := handler.NewExportHandler(uc, appLogger)

	// initialize fiber app
	app := fiber.New()

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(cors.New())

	api := app.Group("/api")

	api.Get("/extractions", extractionHandler.List)
	api.Post("/extractions", extractionHandler.Create)
	api.Post("/extractions/upload", extractionHandler.Upload)
	api.Delete("/extractions/clear", extractionHandler.Clear)
	api.Get("/extractions/:id", extractionHandler.GetByID)
	api.Delete("/extractions/:id", extractionHandler.Delete)

	api.Get("/metrics", extractionHandler.Metrics)

	api.Get("/export/csv", exportHandler.CSV)
	api.Get("/export/xlsx", exportHandler.XLSX)

	api.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	appLogger.Info("server starting", "port", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		appLogger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
