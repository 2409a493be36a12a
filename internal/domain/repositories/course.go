package repositories

import (
	"context"

	"studymate/internal/domain/models"
)

// CourseRepository defines data access operations for courses
type CourseRepository interface {
	// Create creates a new course and returns it with generated ID and timestamps
	Create(ctx context.Context, course *models.Course) error

	// GetByID retrieves a course by ID regardless of owner
	GetByID(ctx context.Context, id string) (*models.Course, error)

	// ListByOwner retrieves all courses owned by a user, ordered by updated_at DESC
	ListByOwner(ctx context.Context, ownerID string) ([]models.Course, error)
}
