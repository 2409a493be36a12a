package repositories

import (
	"context"

	"studymate/internal/domain/models"
)

// FileRepository defines data access operations for file metadata records
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file scoped to a course
	GetByID(ctx context.Context, id, courseID string) (*models.File, error)

	// GetByIDOnly retrieves a file without course scoping (for authorization lookups)
	GetByIDOnly(ctx context.Context, id string) (*models.File, error)

	// Delete deletes a file record
	Delete(ctx context.Context, id, courseID string) error

	// ListByFolder lists files in a folder (nil folderID = course root)
	ListByFolder(ctx context.Context, folderID *string, courseID string) ([]models.File, error)

	// GetAllByCourse retrieves all file records in a course (flat list)
	GetAllByCourse(ctx context.Context, courseID string) ([]models.File, error)
}
