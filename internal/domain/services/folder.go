package services

import (
	"context"

	"studymate/internal/domain/models"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder with its computed path
	GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error)

	// UpdateFolder updates a folder (rename or move)
	UpdateFolder(ctx context.Context, userID, folderID string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder deletes a folder and everything inside it (cascade)
	DeleteFolder(ctx context.Context, userID, folderID string) error

	// ListContents lists all child folders and files (nil folderID = course root)
	ListContents(ctx context.Context, userID string, folderID *string, courseID string) (*FolderContents, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	CourseID string  `json:"course_id"`
	UserID   string  `json:"-"` // Set by handler from auth context, not from request body
	Name     string  `json:"name"`
	FolderID *string `json:"folder_id,omitempty"` // Parent folder ID (null for course root)
}

// UpdateFolderRequest represents a folder update request
type UpdateFolderRequest struct {
	Name     *string `json:"name,omitempty"`      // rename
	FolderID *string `json:"folder_id,omitempty"` // move (use empty string for course root)
}

// FolderContents represents a folder with its children
type FolderContents struct {
	Folder  *models.Folder  `json:"folder,omitempty"` // null for course root
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}
