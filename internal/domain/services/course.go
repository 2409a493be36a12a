package services

import (
	"context"

	"studymate/internal/domain/models"
)

// CourseService handles course business logic. The file subsystem only reads
// courses; creation exists for the instructor-facing API and seeding.
type CourseService interface {
	// CreateCourse creates a new course owned by the caller
	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)

	// GetCourse retrieves a course the caller can access
	GetCourse(ctx context.Context, userID, courseID string) (*models.Course, error)

	// ListCourses retrieves all courses owned by the caller
	ListCourses(ctx context.Context, userID string) ([]models.Course, error)
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	UserID string `json:"-"` // Set by handler from auth context
	Title  string `json:"title"`
	Code   string `json:"code,omitempty"`
}
