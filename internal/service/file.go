package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"studymate/internal/config"
	"studymate/internal/domain"
	"studymate/internal/domain/models"
	"studymate/internal/domain/repositories"
	"studymate/internal/domain/services"
	"studymate/internal/storage"
	"studymate/internal/storage/filetypes"
)

type fileService struct {
	fileRepo   repositories.FileRepository
	folderRepo repositories.FolderRepository
	store      storage.ObjectStore
	filetypes  *filetypes.Registry
	authorizer services.CourseAuthorizer
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo repositories.FileRepository,
	folderRepo repositories.FolderRepository,
	store storage.ObjectStore,
	typeRegistry *filetypes.Registry,
	authorizer services.CourseAuthorizer,
	logger *slog.Logger,
) services.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		store:      store,
		filetypes:  typeRegistry,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Upload stores a file and persists its record.
//
// Everything local is validated before the first remote call, so a rejected
// request leaves no partial state. After the object store accepts the bytes,
// a failing record write triggers a compensating remove of the exact key the
// store returned; the compensation's own failure is logged, never surfaced,
// and the original error is reported.
func (s *fileService) Upload(ctx context.Context, req *services.UploadFileRequest) (*models.File, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Normalize empty string to nil for root-level uploads
	if req.FolderID != nil && *req.FolderID == "" {
		req.FolderID = nil
	}

	category, ok := s.filetypes.Lookup(req.ContentType, req.Name)
	if !ok {
		return nil, &domain.UnsupportedTypeError{
			ContentType: req.ContentType,
			Filename:    req.Name,
		}
	}

	if err := s.authorizer.CanAccessCourse(ctx, req.UploaderID, req.CourseID); err != nil {
		return nil, err
	}

	// A target folder must resolve within the same course
	if req.FolderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *req.FolderID, req.CourseID); err != nil {
			return nil, fmt.Errorf("target folder not found: %w", err)
		}
	}

	name := strings.TrimSpace(req.Name)

	// Check for duplicate name among siblings before touching the store.
	// Unlike folder writes this check is not transactional: the remote Put
	// sits between check and insert, and a transaction cannot stay open
	// across it. The unique index catches the race; the insert then fails
	// with a conflict and the stored object is compensated like any other
	// record failure.
	siblings, err := s.fileRepo.ListByFolder(ctx, req.FolderID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	for _, sibling := range siblings {
		if sibling.Name == name {
			return nil, &domain.ConflictError{
				Message:      fmt.Sprintf("a file named %q already exists in this location", name),
				ResourceType: "file",
				ResourceID:   sibling.ID,
			}
		}
	}

	// Remote write. From here on, failure paths must clean up the object.
	stored, err := s.store.Put(ctx, req.Content, req.SizeBytes, storage.PutOptions{
		CourseID:    req.CourseID,
		Filename:    name,
		ContentType: req.ContentType,
	})
	if err != nil {
		return nil, err
	}

	file := &models.File{
		CourseID:    req.CourseID,
		FolderID:    req.FolderID,
		Name:        name,
		StorageKey:  stored.Key,
		StorageURL:  stored.URL,
		ContentType: req.ContentType,
		SizeBytes:   stored.Size,
		UploaderID:  req.UploaderID,
		CreatedAt:   time.Now(),
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Compensate: the object is unreachable without a record, remove it.
		// Use a detached context so a cancelled request still cleans up.
		s.compensate(context.WithoutCancel(ctx), stored.Key)
		return nil, err
	}

	s.logger.Info("file uploaded",
		"id", file.ID,
		"name", file.Name,
		"course_id", file.CourseID,
		"folder_id", file.FolderID,
		"category", category.Name,
		"size_bytes", file.SizeBytes,
		"uploader_id", file.UploaderID,
	)

	return file, nil
}

// GetFile retrieves a file record
func (s *fileService) GetFile(ctx context.Context, userID, fileID string) (*models.File, error) {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return nil, err
	}

	return s.fileRepo.GetByIDOnly(ctx, fileID)
}

// DownloadURL returns a short-lived presigned URL for the file's bytes
func (s *fileService) DownloadURL(ctx context.Context, userID, fileID string, expiry time.Duration) (string, error) {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return "", err
	}

	file, err := s.fileRepo.GetByIDOnly(ctx, fileID)
	if err != nil {
		return "", err
	}

	return s.store.PresignedURL(ctx, file.StorageKey, expiry)
}

// DeleteFile deletes the record first, then best-effort removes the remote
// object. Once the record is gone the file no longer exists from the user's
// perspective; a failed remote removal is a reconciliation concern, so it is
// logged and not surfaced.
func (s *fileService) DeleteFile(ctx context.Context, userID, fileID string) error {
	if err := s.authorizer.CanAccessFile(ctx, userID, fileID); err != nil {
		return err
	}

	file, err := s.fileRepo.GetByIDOnly(ctx, fileID)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, file.ID, file.CourseID); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, file.StorageKey); err != nil {
		s.logger.Warn("failed to remove remote object, record already deleted",
			"file_id", file.ID,
			"storage_key", file.StorageKey,
			"error", err,
		)
	}

	s.logger.Info("file deleted",
		"id", file.ID,
		"name", file.Name,
		"course_id", file.CourseID,
	)

	return nil
}

// compensate removes an object whose record was never committed
func (s *fileService) compensate(ctx context.Context, key string) {
	if err := s.store.Remove(ctx, key); err != nil {
		s.logger.Error("compensating remove failed, remote object orphaned",
			"storage_key", key,
			"error", err,
		)
		return
	}
	s.logger.Info("compensating remove completed", "storage_key", key)
}

// validateUploadRequest validates an upload request
func (s *fileService) validateUploadRequest(req *services.UploadFileRequest) error {
	if req.Content == nil {
		return fmt.Errorf("file content is required")
	}
	if req.SizeBytes <= 0 {
		return fmt.Errorf("file size must be positive")
	}
	if req.SizeBytes > config.MaxUploadBytes {
		return fmt.Errorf("file exceeds maximum size of %d bytes", config.MaxUploadBytes)
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.CourseID, validation.Required),
		validation.Field(&req.UploaderID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
			validation.Match(folderNamePattern).Error("file name cannot contain slashes"),
		),
	)
}
