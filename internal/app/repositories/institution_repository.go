package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/dberrors"
)

// InstitutionRepository handles database operations for institutions
type InstitutionRepository struct {
	db *pgxpool.Pool
}

// NewInstitutionRepository creates a new InstitutionRepository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
	}
}

// Create creates a new institution
func (r *InstitutionRepository) Create(ctx context.Context, institution *models.Institution) error {
	query := `
		INSERT INTO institutions (name, code, district, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		institution.Name, institution.Code, institution.District, institution.Address,
	).Scan(&institution.ID, &institution.CreatedAt, &institution.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrInstitutionAlreadyExists
		}
		return fmt.Errorf("error creating institution: %w", err)
	}

	return nil
}

// GetByID retrieves an institution by ID
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	query := `
		SELECT id, name, code, district, address, created_at, updated_at
		FROM institutions
		WHERE id = $1
	`

	var institution models.Institution
	err := r.db.QueryRow(ctx, query, id).Scan(
		&institution.ID,
		&institution.Name,
		&institution.Code,
		&institution.District,
		&institution.Address,
		&institution.CreatedAt,
		&institution.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error retrieving institution: %w", err)
	}

	return &institution, nil
}

// GetAll retrieves all institutions ordered by name
func (r *InstitutionRepository) GetAll(ctx context.Context) ([]*models.Institution, error) {
	query := `
		SELECT id, name, code, district, address, created_at, updated_at
		FROM institutions
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		var institution models.Institution
		if err := rows.Scan(
			&institution.ID,
			&institution.Name,
			&institution.Code,
			&institution.District,
			&institution.Address,
			&institution.CreatedAt,
			&institution.UpdatedAt,
		); err != nil {
			return nil, err
		}
		institutions = append(institutions, &institution)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return institutions, nil
}

// ExistsByNameOrCode checks if an institution exists by name or code,
// excluding the given id (pass 0 when creating).
func (r *InstitutionRepository) ExistsByNameOrCode(ctx context.Context, name, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM institutions WHERE (name = $1 OR code = $2) AND id != $3)`,
		name, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking institution existence: %w", err)
	}

	return exists, nil
}

// Update updates an existing institution
func (r *InstitutionRepository) Update(ctx context.Context, institution *models.Institution) error {
	query := `
		UPDATE institutions
		SET name = $1, code = $2, district = $3, address = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		institution.Name, institution.Code, institution.District,
		institution.Address, institution.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrInstitutionAlreadyExists
		}
		return fmt.Errorf("error updating institution: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}

// HasStudents checks whether any students are enrolled at the institution
func (r *InstitutionRepository) HasStudents(ctx context.Context, id int64) (bool, error) {
	var has bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE institution_id = $1)`, id).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("error checking enrolled students: %w", err)
	}
	return has, nil
}

// Delete deletes an institution by ID. Institutions with enrolled students
// cannot be deleted.
func (r *InstitutionRepository) Delete(ctx context.Context, id int64) error {
	hasStudents, err := r.HasStudents(ctx, id)
	if err != nil {
		return err
	}
	if hasStudents {
		return apperrors.ErrInstitutionHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrInstitutionHasRelations
		}
		return fmt.Errorf("error deleting institution: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}
