package service

import (
	"context"
	"log/slog"

	"studymate/internal/domain/models"
	"studymate/internal/domain/repositories"
	"studymate/internal/domain/services"
)

// treeService implements the services.TreeService interface
type treeService struct {
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	authorizer services.CourseAuthorizer
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	authorizer services.CourseAuthorizer,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// GetCourseTree builds and returns the nested folder/file tree for a course
func (s *treeService) GetCourseTree(ctx context.Context, userID, courseID string) (*models.TreeNode, error) {
	if err := s.authorizer.CanAccessCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}

	allFolders, err := s.folderRepo.GetAllByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	allFiles, err := s.fileRepo.GetAllByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// Build folder hierarchy using a 3-pass algorithm
	folderMap := make(map[string]*models.FolderTreeNode)
	var rootFolderIDs []string

	// First pass: create all folder nodes
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Files:     []models.FileTreeNode{},
		}
	}

	// Second pass: nest folders by connecting children to parents
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		if folder.ParentID == nil {
			rootFolderIDs = append(rootFolderIDs, folder.ID)
		} else {
			if parent, exists := folderMap[*folder.ParentID]; exists {
				parent.Folders = append(parent.Folders, node)
			}
		}
	}

	// Third pass: add files to their folders
	rootFiles := make([]models.FileTreeNode, 0)
	for _, file := range allFiles {
		fileNode := models.FileTreeNode{
			ID:          file.ID,
			Name:        file.Name,
			FolderID:    file.FolderID,
			ContentType: file.ContentType,
			SizeBytes:   file.SizeBytes,
			CreatedAt:   file.CreatedAt,
		}

		if file.FolderID == nil {
			rootFiles = append(rootFiles, fileNode)
		} else {
			if parent, exists := folderMap[*file.FolderID]; exists {
				parent.Files = append(parent.Files, fileNode)
			}
		}
	}

	rootFolders := make([]*models.FolderTreeNode, 0)
	for _, folderID := range rootFolderIDs {
		if node, exists := folderMap[folderID]; exists {
			rootFolders = append(rootFolders, node)
		}
	}

	tree := &models.TreeNode{
		Folders: rootFolders,
		Files:   rootFiles,
	}

	s.logger.Info("course tree built",
		"course_id", courseID,
		"folder_count", len(allFolders),
		"file_count", len(allFiles),
	)

	return tree, nil
}
