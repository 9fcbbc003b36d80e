package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// FileRepository handles database operations for file metadata
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create stores metadata for an uploaded file
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (file_name, file_path, file_url, file_size, file_type,
			resource_type, resource_id, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		file.FileName, file.FilePath, file.FileURL, file.FileSize, file.FileType,
		file.ResourceType, file.ResourceID, file.UploadedBy,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating file record: %w", err)
	}

	return nil
}

// GetByID retrieves file metadata by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := `
		SELECT id, file_name, file_path, file_url, file_size, file_type,
			resource_type, resource_id, uploaded_by, created_at, updated_at
		FROM files
		WHERE id = $1
	`

	var file models.File
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.FileName,
		&file.FilePath,
		&file.FileURL,
		&file.FileSize,
		&file.FileType,
		&file.ResourceType,
		&file.ResourceID,
		&file.UploadedBy,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("file not found")
		}
		return nil, fmt.Errorf("error retrieving file: %w", err)
	}

	return &file, nil
}

// ListByResource retrieves all files attached to a resource
func (r *FileRepository) ListByResource(ctx context.Context, resourceType models.FileType, resourceID int64) ([]*models.File, error) {
	query := `
		SELECT id, file_name, file_path, file_url, file_size, file_type,
			resource_type, resource_id, uploaded_by, created_at, updated_at
		FROM files
		WHERE resource_type = $1 AND resource_id = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.File
	for rows.Next() {
		var file models.File
		if err := rows.Scan(
			&file.ID,
			&file.FileName,
			&file.FilePath,
			&file.FileURL,
			&file.FileSize,
			&file.FileType,
			&file.ResourceType,
			&file.ResourceID,
			&file.UploadedBy,
			&file.CreatedAt,
			&file.UpdatedAt,
		); err != nil {
			return nil, err
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// Delete removes a file metadata row
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("file not found")
	}
	return nil
}
