package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	pkgConfig "github.com/kerimovok/go-pkg-utils/config"
	pkgValidator "github.com/kerimovok/go-pkg-utils/validator"

	"loader-api/internal/config"
	"loader-api/internal/constants"
	"loader-api/internal/database"
	"loader-api/internal/handlers"
	"loader-api/internal/routes"
	"loader-api/internal/services"
)

func setupApp(store *database.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    config.GetConfig().Storage.Server.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(compress.New())
	app.Use(recover.New())
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			_, ok, err := store.FetchScalar(c.Context(), "SELECT 1")
			return err == nil && ok
		},
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	app.Use(logger.New())

	return app
}

func main() {
	// Load all configs
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("failed to load configs: %v", err)
	}

	// Validate environment variables
	if err := pkgValidator.ValidateConfig(constants.EnvValidationRules); err != nil {
		log.Fatalf("configuration validation failed: %v", err)
	}

	// The entry point owns the store lifecycle: connect and ensure the
	// schema here, shut the pool down on exit.
	ctx := context.Background()
	store := database.NewStore()
	if err := store.Connect(ctx, database.ConfigFromEnv()); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure database schema: %v", err)
	}

	storageCfg := config.GetConfig().Storage
	fileService := services.NewFileService(store, storageCfg.Storage.UploadDir)
	if storageCfg.Storage.CreateDirs {
		if err := fileService.EnsureUploadDir(); err != nil {
			log.Fatalf("failed to create upload directory: %v", err)
		}
	}

	// Setup Fiber app
	app := setupApp(store)

	// Setup routes
	routes.SetupRoutes(app, fileService)

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")

		// Shutdown the server, then release the pool
		if err := app.Shutdown(); err != nil {
			log.Printf("error during server shutdown: %v", err)
		}
		store.Shutdown()

		log.Println("Server gracefully stopped")
		os.Exit(0)
	}()

	// Start server
	if err := app.Listen(":" + pkgConfig.GetEnv("PORT")); err != nil && err != http.ErrServerClosed {
		log.Fatalf("failed to start server: %v", err)
	}
}
