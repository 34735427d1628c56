package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"loader-api/internal/handlers"
	"loader-api/internal/services"
)

func SetupRoutes(app *fiber.App, fileService *services.FileService) {
	// Monitor route
	app.Get("/metrics", monitor.New())

	fileHandler := handlers.NewFileHandler(fileService)

	app.Get("/health", fileHandler.Health)
	app.Post("/loader", fileHandler.UploadFile)
	app.Get("/files", fileHandler.ListFiles)
	app.Delete("/delete_file/:file_id", fileHandler.DeleteFile)
}
