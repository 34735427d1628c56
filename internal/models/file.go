package models

import "time"

// FileRecord represents one uploaded file. It mirrors the files table:
// a row exists iff the corresponding binary is expected on disk.
// UploadedAt is assigned by the database and never exposed in responses.
type FileRecord struct {
	FileID     string    `json:"file_id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	UploadedAt time.Time `json:"-"`
}

// DeletedFile is the confirmation body returned by the delete endpoint.
type DeletedFile struct {
	DeletedFile string `json:"deleted_file"`
}
