package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// GrievanceRepository handles database operations for student grievances
type GrievanceRepository struct {
	db *pgxpool.Pool
}

// NewGrievanceRepository creates a new GrievanceRepository
func NewGrievanceRepository(db *pgxpool.Pool) *GrievanceRepository {
	return &GrievanceRepository{db: db}
}

const grievanceColumns = `id, student_id, institution_id, subject, detail, status,
		resolution, resolved_by, resolved_at, created_at`

func scanGrievance(row pgx.Row) (*models.Grievance, error) {
	var grievance models.Grievance
	err := row.Scan(
		&grievance.ID,
		&grievance.StudentID,
		&grievance.InstitutionID,
		&grievance.Subject,
		&grievance.Detail,
		&grievance.Status,
		&grievance.Resolution,
		&grievance.ResolvedBy,
		&grievance.ResolvedAt,
		&grievance.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("error retrieving grievance: %w", err)
	}
	return &grievance, nil
}

// Create creates a new grievance in OPEN status
func (r *GrievanceRepository) Create(ctx context.Context, grievance *models.Grievance) error {
	query := `
		INSERT INTO grievances (student_id, institution_id, subject, detail, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		grievance.StudentID, grievance.InstitutionID, grievance.Subject,
		grievance.Detail, models.GrievanceOpen,
	).Scan(&grievance.ID, &grievance.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating grievance: %w", err)
	}

	grievance.Status = models.GrievanceOpen
	return nil
}

// GetByID retrieves a grievance by ID
func (r *GrievanceRepository) GetByID(ctx context.Context, id int64) (*models.Grievance, error) {
	query := `SELECT ` + grievanceColumns + ` FROM grievances WHERE id = $1`
	return scanGrievance(r.db.QueryRow(ctx, query, id))
}

// List retrieves grievances, optionally scoped to one institution,
// newest first.
func (r *GrievanceRepository) List(ctx context.Context, institutionID *int64) ([]*models.Grievance, error) {
	query := `
		SELECT ` + grievanceColumns + `
		FROM grievances
		WHERE $1::BIGINT IS NULL OR institution_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grievances []*models.Grievance
	for rows.Next() {
		grievance, err := scanGrievance(rows)
		if err != nil {
			return nil, err
		}
		grievances = append(grievances, grievance)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grievances, nil
}

// ListByStudent retrieves the grievances filed by one student, newest
// first.
func (r *GrievanceRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Grievance, error) {
	query := `
		SELECT ` + grievanceColumns + `
		FROM grievances
		WHERE student_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grievances []*models.Grievance
	for rows.Next() {
		grievance, err := scanGrievance(rows)
		if err != nil {
			return nil, err
		}
		grievances = append(grievances, grievance)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grievances, nil
}

// MarkUnderReview moves an open grievance to UNDER_REVIEW
func (r *GrievanceRepository) MarkUnderReview(ctx context.Context, id int64) error {
	query := `
		UPDATE grievances
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, models.GrievanceUnderReview, id, models.GrievanceOpen)
	if err != nil {
		return fmt.Errorf("error updating grievance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Separate a missing grievance from one in the wrong state
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrInvalidGrievanceChange
	}

	return nil
}

// Resolve records the resolution of a grievance. Already resolved
// grievances are left untouched.
func (r *GrievanceRepository) Resolve(ctx context.Context, id, resolvedBy int64, resolution string) error {
	query := `
		UPDATE grievances
		SET status = $1, resolution = $2, resolved_by = $3, resolved_at = $4
		WHERE id = $5 AND status != $1
	`

	cmdTag, err := r.db.Exec(ctx, query,
		models.GrievanceResolved, resolution, resolvedBy, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error resolving grievance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Separate a missing grievance from one already resolved
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrInvalidGrievanceChange
	}

	return nil
}
