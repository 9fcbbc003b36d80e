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

// VisitRepository handles database operations for faculty visit logs
type VisitRepository struct {
	db *pgxpool.Pool
}

// NewVisitRepository creates a new VisitRepository
func NewVisitRepository(db *pgxpool.Pool) *VisitRepository {
	return &VisitRepository{db: db}
}

// Create creates a new visit log entry
func (r *VisitRepository) Create(ctx context.Context, visit *models.VisitLog) error {
	query := `
		INSERT INTO visit_logs (application_id, faculty_id, visit_date, mode, remarks)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		visit.ApplicationID, visit.FacultyID, visit.VisitDate, visit.Mode, visit.Remarks,
	).Scan(&visit.ID, &visit.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating visit log: %w", err)
	}

	return nil
}

// GetByID retrieves a visit log by ID
func (r *VisitRepository) GetByID(ctx context.Context, id int64) (*models.VisitLog, error) {
	query := `
		SELECT id, application_id, faculty_id, visit_date, mode, remarks, created_at
		FROM visit_logs
		WHERE id = $1
	`

	var visit models.VisitLog
	err := r.db.QueryRow(ctx, query, id).Scan(
		&visit.ID,
		&visit.ApplicationID,
		&visit.FacultyID,
		&visit.VisitDate,
		&visit.Mode,
		&visit.Remarks,
		&visit.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVisitNotFound
		}
		return nil, fmt.Errorf("error retrieving visit log: %w", err)
	}

	return &visit, nil
}

// ListByApplication retrieves all visit logs of an application with the
// visiting faculty attached, ordered by visit date.
func (r *VisitRepository) ListByApplication(ctx context.Context, applicationID int64) ([]*models.VisitLog, error) {
	query := `
		SELECT v.id, v.application_id, v.faculty_id, v.visit_date, v.mode, v.remarks, v.created_at,
			u.id, u.email, u.first_name, u.last_name, u.is_active
		FROM visit_logs v
		JOIN users u ON u.id = v.faculty_id
		WHERE v.application_id = $1
		ORDER BY v.visit_date
	`

	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*models.VisitLog
	for rows.Next() {
		var visit models.VisitLog
		var faculty models.User
		if err := rows.Scan(
			&visit.ID,
			&visit.ApplicationID,
			&visit.FacultyID,
			&visit.VisitDate,
			&visit.Mode,
			&visit.Remarks,
			&visit.CreatedAt,
			&faculty.ID,
			&faculty.Email,
			&faculty.FirstName,
			&faculty.LastName,
			&faculty.IsActive,
		); err != nil {
			return nil, err
		}
		faculty.RoleType = models.RoleFaculty
		visit.Faculty = &faculty
		visits = append(visits, &visit)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return visits, nil
}

// ListByFaculty retrieves all visit logs recorded by a faculty member,
// newest first.
func (r *VisitRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.VisitLog, error) {
	query := `
		SELECT id, application_id, faculty_id, visit_date, mode, remarks, created_at
		FROM visit_logs
		WHERE faculty_id = $1
		ORDER BY visit_date DESC
	`

	rows, err := r.db.Query(ctx, query, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*models.VisitLog
	for rows.Next() {
		var visit models.VisitLog
		if err := rows.Scan(
			&visit.ID,
			&visit.ApplicationID,
			&visit.FacultyID,
			&visit.VisitDate,
			&visit.Mode,
			&visit.Remarks,
			&visit.CreatedAt,
		); err != nil {
			return nil, err
		}
		visits = append(visits, &visit)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return visits, nil
}

// CountByApplication returns the number of visits logged for an
// application.
func (r *VisitRepository) CountByApplication(ctx context.Context, applicationID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM visit_logs WHERE application_id = $1`, applicationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting visits: %w", err)
	}
	return count, nil
}
