package repositories

import (
	"context"

	"studymate/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder scoped to a course
	GetByID(ctx context.Context, id, courseID string) (*models.Folder, error)

	// GetByIDOnly retrieves a folder without course scoping (for authorization lookups)
	GetByIDOnly(ctx context.Context, id string) (*models.Folder, error)

	// Update updates a folder
	Update(ctx context.Context, folder *models.Folder) error

	// Delete deletes a folder
	Delete(ctx context.Context, id, courseID string) error

	// ListChildren lists immediate child folders (nil folderID = course root)
	ListChildren(ctx context.Context, folderID *string, courseID string) ([]models.Folder, error)

	// GetPath computes the display path for a folder
	GetPath(ctx context.Context, folderID *string, courseID string) (string, error)

	// GetAllByCourse retrieves all folders in a course (flat list)
	GetAllByCourse(ctx context.Context, courseID string) ([]models.Folder, error)
}
