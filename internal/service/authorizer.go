package service

import (
	"context"

	"studymate/internal/domain"
	"studymate/internal/domain/repositories"
	"studymate/internal/domain/services"
)

// courseAuthorizer enforces course-level rights. The verified identity comes
// from the auth middleware; this only decides whether that identity may act
// on the course a resource belongs to.
type courseAuthorizer struct {
	courseRepo repositories.CourseRepository
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
}

// NewCourseAuthorizer creates a new course authorizer
func NewCourseAuthorizer(
	courseRepo repositories.CourseRepository,
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
) services.CourseAuthorizer {
	return &courseAuthorizer{
		courseRepo: courseRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
	}
}

// CanAccessCourse returns nil if the user owns the course.
// A missing course surfaces as NotFound, a foreign course as Forbidden.
func (a *courseAuthorizer) CanAccessCourse(ctx context.Context, userID, courseID string) error {
	course, err := a.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	if course.OwnerID != userID {
		return &domain.ForbiddenError{Message: "no access to this course"}
	}

	return nil
}

// CanAccessFolder resolves the folder's course and checks access
func (a *courseAuthorizer) CanAccessFolder(ctx context.Context, userID, folderID string) error {
	folder, err := a.folderRepo.GetByIDOnly(ctx, folderID)
	if err != nil {
		return err
	}
	return a.CanAccessCourse(ctx, userID, folder.CourseID)
}

// CanAccessFile resolves the file's course and checks access
func (a *courseAuthorizer) CanAccessFile(ctx context.Context, userID, fileID string) error {
	file, err := a.fileRepo.GetByIDOnly(ctx, fileID)
	if err != nil {
		return err
	}
	return a.CanAccessCourse(ctx, userID, file.CourseID)
}
