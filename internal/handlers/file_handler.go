package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"loader-api/internal/apperrors"
	"loader-api/internal/models"
	"loader-api/internal/services"
)

// FileHandler handles file-related HTTP requests
type FileHandler struct {
	fileService *services.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// Health reports service liveness.
func (h *FileHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK"})
}

// UploadFile handles file upload requests
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}

	src, err := file.Open()
	if err != nil {
		return apperrors.StorageIO("Error reading uploaded file", err)
	}
	defer src.Close()

	record, err := h.fileService.Upload(c.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// ListFiles returns every stored file, ordered by name.
func (h *FileHandler) ListFiles(c *fiber.Ctx) error {
	records, err := h.fileService.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// DeleteFile removes a file and its metadata row by id.
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	fileName, err := h.fileService.Delete(c.Context(), c.Params("file_id"))
	if err != nil {
		return err
	}
	return c.JSON(models.DeletedFile{DeletedFile: fileName})
}

// ErrorHandler translates workflow errors into HTTP responses with the
// {"error": {"code", "message"}} body format. Wired into fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Router-level errors (missing part, body limit, unknown route) keep
	// the status Fiber assigned them.
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"error": fiber.Map{"code": "REQUEST_ERROR", "message": fiberErr.Message},
		})
	}

	appErr := apperrors.From(err)
	if appErr.Status >= fiber.StatusInternalServerError {
		log.Printf("request failed: %v", appErr)
	}
	return c.Status(appErr.Status).JSON(fiber.Map{
		"error": fiber.Map{"code": appErr.Code, "message": appErr.Message},
	})
}
