package services

import "context"

// CourseAuthorizer checks whether a caller may act on a course or on
// resources inside it. Identity itself is trusted from the auth middleware;
// only course-level rights are enforced here.
type CourseAuthorizer interface {
	// CanAccessCourse returns nil if the user may act on the course
	CanAccessCourse(ctx context.Context, userID, courseID string) error

	// CanAccessFolder resolves the folder's course and checks access
	CanAccessFolder(ctx context.Context, userID, folderID string) error

	// CanAccessFile resolves the file's course and checks access
	CanAccessFile(ctx context.Context, userID, fileID string) error
}
