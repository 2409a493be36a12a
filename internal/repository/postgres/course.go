package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"studymate/internal/domain"
	"studymate/internal/domain/models"
	"studymate/internal/domain/repositories"
)

// CourseRepository implements the repositories.CourseRepository interface
type CourseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(config *RepositoryConfig) repositories.CourseRepository {
	return &CourseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, title, code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Courses)

	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		course.OwnerID,
		course.Title,
		course.Code,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("course '%s': %w", course.Title, domain.ErrConflict)
		}
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, title, code, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Courses)

	exec := GetExecutor(ctx, r.pool)

	var course models.Course
	err := exec.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.OwnerID,
		&course.Title,
		&course.Code,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

// ListByOwner retrieves all courses owned by a user
func (r *CourseRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, title, code, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`, r.tables.Courses)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var course models.Course
		err := rows.Scan(
			&course.ID,
			&course.OwnerID,
			&course.Title,
			&course.Code,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}
