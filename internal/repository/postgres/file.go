package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studymate/internal/domain"
	"studymate/internal/domain/models"
	"studymate/internal/domain/repositories"
)

// FileRepository implements the repositories.FileRepository interface
type FileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &FileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new file record
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (course_id, folder_id, name, storage_key, storage_url, content_type, size_bytes, uploader_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, r.tables.Files)

	exec := GetExecutor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		file.CourseID,
		file.FolderID,
		file.Name,
		file.StorageKey,
		file.StorageURL,
		file.ContentType,
		file.SizeBytes,
		file.UploaderID,
		file.CreatedAt,
	).Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("file '%s': %w", file.Name, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("course %s: %w", file.CourseID, domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file scoped to a course
func (r *FileRepository) GetByID(ctx context.Context, id, courseID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, course_id, folder_id, name, storage_key, storage_url, content_type, size_bytes, uploader_id, created_at
		FROM %s
		WHERE id = $1 AND course_id = $2
	`, r.tables.Files)

	exec := GetExecutor(ctx, r.pool)

	var file models.File
	err := exec.QueryRow(ctx, query, id, courseID).Scan(
		&file.ID,
		&file.CourseID,
		&file.FolderID,
		&file.Name,
		&file.StorageKey,
		&file.StorageURL,
		&file.ContentType,
		&file.SizeBytes,
		&file.UploaderID,
		&file.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// GetByIDOnly retrieves a file without course scoping
func (r *FileRepository) GetByIDOnly(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, course_id, folder_id, name, storage_key, storage_url, content_type, size_bytes, uploader_id, created_at
		FROM %s
		WHERE id = $1
	`, r.tables.Files)

	exec := GetExecutor(ctx, r.pool)

	var file models.File
	err := exec.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.CourseID,
		&file.FolderID,
		&file.Name,
		&file.StorageKey,
		&file.StorageURL,
		&file.ContentType,
		&file.SizeBytes,
		&file.UploaderID,
		&file.CreatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// Delete deletes a file record
func (r *FileRepository) Delete(ctx context.Context, id, courseID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND course_id = $2
	`, r.tables.Files)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id, courseID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists files in a folder
func (r *FileRepository) ListByFolder(ctx context.Context, folderID *string, courseID string) ([]models.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT id, course_id, folder_id, name, storage_key, storage_url, content_type, size_bytes, uploader_id, created_at
			FROM %s
			WHERE course_id = $1 AND folder_id IS NULL
			ORDER BY name ASC
		`, r.tables.Files)
		args = append(args, courseID)
	} else {
		query = fmt.Sprintf(`
			SELECT id, course_id, folder_id, name, storage_key, storage_url, content_type, size_bytes, uploader_id, created_at
			FROM %s
			WHERE course_id = $1 AND folder_id = $2
			ORDER BY name ASC
		`, r.tables.Files)
		args = append(args, courseID, *folderID)
	}

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

// GetAllByCourse retrieves all file records in a course (flat list)
func (r *FileRepository) GetAllByCourse(ctx context.Context, courseID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, course_id, folder_id, name, storage_key, storage_url, content_type, size_bytes, uploader_id, created_at
		FROM %s
		WHERE course_id = $1
		ORDER BY created_at ASC
	`, r.tables.Files)

	exec := GetExecutor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("get all files: %w", err)
	}
	defer rows.Close()

	return scanFiles(rows)
}

// scanFiles collects file rows from a result set
func scanFiles(rows pgx.Rows) ([]models.File, error) {
	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.CourseID,
			&file.FolderID,
			&file.Name,
			&file.StorageKey,
			&file.StorageURL,
			&file.ContentType,
			&file.SizeBytes,
			&file.UploaderID,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
