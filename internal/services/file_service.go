package services

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"loader-api/internal/apperrors"
	"loader-api/internal/constants"
	"loader-api/internal/models"
	"loader-api/internal/utils"
)

// MetadataStore is the slice of the store contract the workflows depend on.
// Implemented by *database.Store; faked in tests.
type MetadataStore interface {
	Execute(ctx context.Context, stmt string, args ...any) (int64, error)
	FetchAll(ctx context.Context, query string, args ...any) ([]map[string]any, error)
	FetchScalar(ctx context.Context, query string, args ...any) (any, bool, error)
}

// FileService orchestrates the upload, list and delete workflows: the
// pairing of disk and database side effects with a fixed ordering.
type FileService struct {
	store     MetadataStore
	uploadDir string
}

// NewFileService creates a file service writing under uploadDir.
func NewFileService(store MetadataStore, uploadDir string) *FileService {
	return &FileService{
		store:     store,
		uploadDir: uploadDir,
	}
}

// EnsureUploadDir creates the upload directory if absent. Re-creating an
// existing directory is not an error.
func (s *FileService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return apperrors.StorageIO("failed to create upload directory", err)
	}
	return nil
}

// Upload validates the declared media type, writes the binary to disk under
// a fresh identifier, then inserts the metadata row. The two side effects
// are deliberately ordered disk-first: the only inconsistency a partial
// failure can leave behind is an orphan file, never a row pointing at a
// binary that was never written.
func (s *FileService) Upload(ctx context.Context, fileName, contentType string, src io.Reader) (*models.FileRecord, error) {
	// Media-type gate runs before any side effect.
	if !constants.IsAllowedContentType(contentType) {
		return nil, apperrors.UnsupportedMediaType("Unsupported file type. Only PDF and DOC/DOCX are allowed.")
	}

	// Fresh random id, independent of the filename. The storage path is
	// derived from the id plus the client extension only, so a crafted
	// filename can never escape the upload directory.
	fileID := uuid.NewString()
	filePath := filepath.Join(s.uploadDir, fileID+utils.GetFileExtension(fileName))

	if err := writeFile(filePath, src); err != nil {
		return nil, apperrors.StorageIO("Error saving file", err)
	}

	// Row insert comes last. On failure the just-written file is removed
	// best-effort; the uploaded_at column is assigned by the database.
	_, err := s.store.Execute(ctx,
		`INSERT INTO files (file_id, file_name, file_path) VALUES ($1, $2, $3)`,
		fileID, fileName, filePath,
	)
	if err != nil {
		if rmErr := os.Remove(filePath); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("Warning: failed to remove orphan file %s: %v", filePath, rmErr)
		}
		return nil, err
	}

	return &models.FileRecord{
		FileID:   fileID,
		FileName: fileName,
		FilePath: filePath,
	}, nil
}

// List returns every stored file, ordered by file_name ascending.
func (s *FileService) List(ctx context.Context) ([]models.FileRecord, error) {
	rows, err := s.store.FetchAll(ctx,
		`SELECT file_id, file_name, file_path FROM files ORDER BY file_name`)
	if err != nil {
		return nil, err
	}

	records := make([]models.FileRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

// Delete removes the disk object and the metadata row for fileID, in that
// order, and returns the original file name. An already-absent disk object
// is tolerated; any other removal failure aborts before the row delete so
// the caller can retry.
func (s *FileService) Delete(ctx context.Context, fileID string) (string, error) {
	rows, err := s.store.FetchAll(ctx,
		`SELECT file_name, file_path FROM files WHERE file_id = $1`, fileID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", apperrors.NotFound("File not found")
	}
	record := recordFromRow(rows[0])

	if err := os.Remove(record.FilePath); err != nil && !os.IsNotExist(err) {
		return "", apperrors.StorageIO("Error deleting file", err)
	}

	// Zero affected rows is tolerated: a concurrent delete may have won
	// the race after our lookup.
	if _, err := s.store.Execute(ctx,
		`DELETE FROM files WHERE file_id = $1`, fileID); err != nil {
		return "", err
	}

	return record.FileName, nil
}

// writeFile copies src to path. A partially written file is removed on any
// failure so it can never be referenced by a row.
func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func recordFromRow(row map[string]any) models.FileRecord {
	record := models.FileRecord{}
	if v, ok := row["file_id"].(string); ok {
		record.FileID = v
	}
	if v, ok := row["file_name"].(string); ok {
		record.FileName = v
	}
	if v, ok := row["file_path"].(string); ok {
		record.FilePath = v
	}
	return record
}
