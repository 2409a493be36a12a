package services

import (
	"context"

	"studymate/internal/domain/models"
)

// TreeService defines operations for building course content trees
type TreeService interface {
	// GetCourseTree builds and returns the nested folder/file tree for a course
	// userID is used for authorization check
	GetCourseTree(ctx context.Context, userID, courseID string) (*models.TreeNode, error)
}
