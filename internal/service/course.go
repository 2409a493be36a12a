package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"studymate/internal/config"
	"studymate/internal/domain"
	"studymate/internal/domain/models"
	"studymate/internal/domain/repositories"
	"studymate/internal/domain/services"
)

type courseService struct {
	courseRepo repositories.CourseRepository
	logger     *slog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo repositories.CourseRepository, logger *slog.Logger) services.CourseService {
	return &courseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// CreateCourse creates a new course owned by the caller
func (s *courseService) CreateCourse(ctx context.Context, req *services.CreateCourseRequest) (*models.Course, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	course := &models.Course{
		OwnerID:   req.UserID,
		Title:     req.Title,
		Code:      req.Code,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		"id", course.ID,
		"title", course.Title,
		"owner_id", course.OwnerID,
	)

	return course, nil
}

// GetCourse retrieves a course the caller owns
func (s *courseService) GetCourse(ctx context.Context, userID, courseID string) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if course.OwnerID != userID {
		return nil, &domain.ForbiddenError{Message: "no access to this course"}
	}

	return course, nil
}

// ListCourses retrieves all courses owned by the caller
func (s *courseService) ListCourses(ctx context.Context, userID string) ([]models.Course, error) {
	return s.courseRepo.ListByOwner(ctx, userID)
}

// validateCreateRequest validates a course creation request
func (s *courseService) validateCreateRequest(req *services.CreateCourseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxCourseTitleLength),
		),
	)
}
