package services

import (
	"context"
	"io"
	"time"

	"studymate/internal/domain/models"
)

// FileService handles file business logic
type FileService interface {
	// Upload validates the request, stores the bytes in the object store,
	// and persists the file record. If the record write fails after the
	// bytes were stored, the stored object is removed best-effort.
	Upload(ctx context.Context, req *UploadFileRequest) (*models.File, error)

	// GetFile retrieves a file record
	// userID is used for authorization check
	GetFile(ctx context.Context, userID, fileID string) (*models.File, error)

	// DownloadURL returns a short-lived presigned URL for the file's bytes
	DownloadURL(ctx context.Context, userID, fileID string, expiry time.Duration) (string, error)

	// DeleteFile deletes the file record, then best-effort removes the
	// remote object. A second delete of the same ID fails with not found.
	DeleteFile(ctx context.Context, userID, fileID string) error
}

// UploadFileRequest represents a file upload request. It is assembled by the
// handler from the multipart form; the body never reaches the service raw.
type UploadFileRequest struct {
	CourseID    string
	FolderID    *string // null = course root
	UploaderID  string  // Set from auth context
	Name        string  // Declared filename, e.g. "week1.pdf"
	ContentType string  // Declared content type
	SizeBytes   int64
	Content     io.Reader
}
