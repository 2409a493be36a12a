package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"studymate/internal/config"
	"studymate/internal/domain"
	"studymate/internal/domain/models"
	"studymate/internal/domain/repositories"
	"studymate/internal/domain/services"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	fileSvc    services.FileService // File deletion is delegated so the remote-object contract stays in one place
	txManager  repositories.TransactionManager
	authorizer services.CourseAuthorizer
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	fileSvc services.FileService,
	txManager repositories.TransactionManager,
	authorizer services.CourseAuthorizer,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		fileSvc:    fileSvc,
		txManager:  txManager,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level folders
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	if err := s.authorizer.CanAccessCourse(ctx, req.UserID, req.CourseID); err != nil {
		return nil, err
	}

	// If a parent folder is specified, it must resolve within the same course
	if req.FolderID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.CourseID)
		if err != nil {
			return nil, fmt.Errorf("parent folder not found: %w", err)
		}
		s.logger.Debug("parent folder found",
			"parent_id", parent.ID,
			"parent_name", parent.Name,
		)
	}

	name := strings.TrimSpace(req.Name)

	folder := &models.Folder{
		CourseID:  req.CourseID,
		ParentID:  req.FolderID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Duplicate check and insert run in one transaction so concurrent
	// creates can't both pass the check
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		siblings, err := s.folderRepo.ListChildren(txCtx, req.FolderID, req.CourseID)
		if err != nil {
			return fmt.Errorf("failed to check for duplicate names: %w", err)
		}
		for _, sibling := range siblings {
			if sibling.Name == name {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
					ResourceType: "folder",
					ResourceID:   sibling.ID,
				}
			}
		}

		return s.folderRepo.Create(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	// Compute display path
	path, err := s.folderRepo.GetPath(ctx, &folder.ID, req.CourseID)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		folder.Path = folder.Name
	} else {
		folder.Path = path
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"course_id", req.CourseID,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder with its computed path
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return nil, err
	}

	path, err := s.folderRepo.GetPath(ctx, &folder.ID, folder.CourseID)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		folder.Path = folder.Name
	} else {
		folder.Path = path
	}

	return folder, nil
}

// UpdateFolder updates a folder (rename or move)
func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = strings.TrimSpace(*req.Name)
	}

	if req.FolderID != nil {
		if *req.FolderID != "" {
			// Move to the specified folder; it must belong to the same course
			parent, err := s.folderRepo.GetByID(ctx, *req.FolderID, folder.CourseID)
			if err != nil {
				return nil, fmt.Errorf("parent folder not found: %w", err)
			}

			if err := s.validateNoCircularReference(ctx, folderID, parent.ID, folder.CourseID); err != nil {
				return nil, err
			}

			folder.ParentID = &parent.ID
			s.logger.Debug("moving folder to new parent",
				"folder_id", folderID,
				"new_parent_id", parent.ID,
			)
		} else {
			// Empty string = move to course root
			folder.ParentID = nil
			s.logger.Debug("moving folder to course root", "folder_id", folderID)
		}
	}

	folder.UpdatedAt = time.Now()

	// Duplicate check and update run in one transaction so concurrent
	// renames into the same location can't both pass the check
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		siblings, err := s.folderRepo.ListChildren(txCtx, folder.ParentID, folder.CourseID)
		if err != nil {
			return fmt.Errorf("failed to check for duplicate names: %w", err)
		}
		for _, sibling := range siblings {
			if sibling.ID != folder.ID && sibling.Name == folder.Name {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("a folder named %q already exists in this location", folder.Name),
					ResourceType: "folder",
					ResourceID:   sibling.ID,
				}
			}
		}

		return s.folderRepo.Update(txCtx, folder)
	})
	if err != nil {
		return nil, err
	}

	path, err := s.folderRepo.GetPath(ctx, &folder.ID, folder.CourseID)
	if err != nil {
		s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
		folder.Path = folder.Name
	} else {
		folder.Path = path
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// DeleteFolder deletes a folder and all its contents (files and subfolders)
// recursively. Each file deletion follows the file deletion contract: the
// record goes first, then the remote object best-effort. Items already gone
// are skipped, so a partially failed cascade completes on retry.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	if err := s.authorizer.CanAccessFolder(ctx, userID, folderID); err != nil {
		return err
	}

	folder, err := s.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return err
	}

	if err := s.deleteDescendants(ctx, userID, folderID, folder.CourseID); err != nil {
		return err
	}

	if err := s.folderRepo.Delete(ctx, folderID, folder.CourseID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"course_id", folder.CourseID,
	)

	return nil
}

// deleteDescendants recursively deletes all child folders and files.
// Not-found errors are skipped: a retried cascade must not fail on items a
// previous attempt already removed.
func (s *folderService) deleteDescendants(ctx context.Context, userID, folderID, courseID string) error {
	childFolders, err := s.folderRepo.ListChildren(ctx, &folderID, courseID)
	if err != nil {
		return fmt.Errorf("failed to list child folders: %w", err)
	}

	for _, child := range childFolders {
		if err := s.deleteDescendants(ctx, userID, child.ID, courseID); err != nil {
			return err
		}
		if err := s.folderRepo.Delete(ctx, child.ID, courseID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to delete child folder %q: %w", child.Name, err)
		}
		s.logger.Debug("deleted child folder", "id", child.ID, "name", child.Name)
	}

	files, err := s.fileRepo.ListByFolder(ctx, &folderID, courseID)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	for _, file := range files {
		if err := s.fileSvc.DeleteFile(ctx, userID, file.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to delete file %q: %w", file.Name, err)
		}
		s.logger.Debug("deleted file", "id", file.ID, "name", file.Name)
	}

	return nil
}

// ListContents lists all child folders and files in a folder
func (s *folderService) ListContents(ctx context.Context, userID string, folderID *string, courseID string) (*services.FolderContents, error) {
	if err := s.authorizer.CanAccessCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}

	var folder *models.Folder
	var err error

	// If a folder is requested it must resolve within this course;
	// a folder from another course is reported as not found, never as an
	// empty listing.
	if folderID != nil && *folderID != "" {
		folder, err = s.folderRepo.GetByID(ctx, *folderID, courseID)
		if err != nil {
			return nil, err
		}

		path, err := s.folderRepo.GetPath(ctx, &folder.ID, courseID)
		if err != nil {
			s.logger.Warn("failed to compute path", "folder_id", folder.ID, "error", err)
			folder.Path = folder.Name
		} else {
			folder.Path = path
		}
	} else {
		folderID = nil
	}

	childFolders, err := s.folderRepo.ListChildren(ctx, folderID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child folders: %w", err)
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return &services.FolderContents{
		Folder:  folder,
		Folders: childFolders,
		Files:   files,
	}, nil
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CourseID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}

// validateUpdateRequest validates a folder update request
func (s *folderService) validateUpdateRequest(req *services.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && req.FolderID == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Name != nil {
		return validation.ValidateStruct(req,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
				validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
			),
		)
	}

	return nil
}

// validateNoCircularReference ensures moving a folder won't create circular references
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID, newParentID, courseID string) error {
	// Can't move a folder under itself
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move folder to be its own parent", domain.ErrValidation)
	}

	// Walk up from the new parent; hitting folderID means the target is a descendant
	currentID := newParentID
	for {
		parent, err := s.folderRepo.GetByID(ctx, currentID, courseID)
		if err != nil {
			return err
		}

		if parent.ParentID == nil {
			// Reached the course root, no cycle
			break
		}

		if *parent.ParentID == folderID {
			return fmt.Errorf("%w: cannot move folder into its own descendant", domain.ErrValidation)
		}

		currentID = *parent.ParentID
	}

	return nil
}
