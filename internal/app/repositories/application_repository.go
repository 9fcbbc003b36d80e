package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// ApplicationFilter narrows application listings. Nil fields are ignored.
type ApplicationFilter struct {
	InstitutionID *int64
	StudentID     *int64
	Status        *models.ApplicationStatus
	Phase         *models.InternshipPhase
}

// ApplicationRepository handles database operations for internship
// applications.
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, student_id, institution_id, company_name, company_address,
		company_contact, role_title, start_date, end_date, stipend_monthly, status, phase,
		decided_by, decided_at, rejection_reason, termination_reason, created_at, updated_at`

func scanApplication(row pgx.Row) (*models.InternshipApplication, error) {
	var app models.InternshipApplication
	err := row.Scan(
		&app.ID,
		&app.StudentID,
		&app.InstitutionID,
		&app.CompanyName,
		&app.CompanyAddress,
		&app.CompanyContact,
		&app.RoleTitle,
		&app.StartDate,
		&app.EndDate,
		&app.StipendMonthly,
		&app.Status,
		&app.Phase,
		&app.DecidedBy,
		&app.DecidedAt,
		&app.RejectionReason,
		&app.TerminationReason,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return &app, nil
}

// Create creates a new internship application in PENDING status
func (r *ApplicationRepository) Create(ctx context.Context, app *models.InternshipApplication) error {
	query := `
		INSERT INTO internship_applications
			(student_id, institution_id, company_name, company_address, company_contact,
			 role_title, start_date, end_date, stipend_monthly, status, phase)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		app.StudentID, app.InstitutionID, app.CompanyName, app.CompanyAddress,
		app.CompanyContact, app.RoleTitle, app.StartDate, app.EndDate,
		app.StipendMonthly, models.ApplicationPending, models.PhaseNotStarted,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating application: %w", err)
	}

	app.Status = models.ApplicationPending
	app.Phase = models.PhaseNotStarted
	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.InternshipApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM internship_applications WHERE id = $1`
	return scanApplication(r.db.QueryRow(ctx, query, id))
}

// List retrieves a filtered page of applications ordered newest first
func (r *ApplicationRepository) List(ctx context.Context, filter ApplicationFilter, offset, limit int) ([]*models.InternshipApplication, int64, error) {
	query := squirrel.Select(
		"id", "student_id", "institution_id", "company_name", "company_address",
		"company_contact", "role_title", "start_date", "end_date", "stipend_monthly",
		"status", "phase", "decided_by", "decided_at", "rejection_reason",
		"termination_reason", "created_at", "updated_at",
	).
		From("internship_applications").
		PlaceholderFormat(squirrel.Dollar)

	if filter.InstitutionID != nil {
		query = query.Where("institution_id = ?", *filter.InstitutionID)
	}
	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Phase != nil {
		query = query.Where("phase = ?", *filter.Phase)
	}

	query = query.Column("COUNT(*) OVER()").
		OrderBy("created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var apps []*models.InternshipApplication
	var total int64
	for rows.Next() {
		var app models.InternshipApplication
		err := rows.Scan(
			&app.ID,
			&app.StudentID,
			&app.InstitutionID,
			&app.CompanyName,
			&app.CompanyAddress,
			&app.CompanyContact,
			&app.RoleTitle,
			&app.StartDate,
			&app.EndDate,
			&app.StipendMonthly,
			&app.Status,
			&app.Phase,
			&app.DecidedBy,
			&app.DecidedAt,
			&app.RejectionReason,
			&app.TerminationReason,
			&app.CreatedAt,
			&app.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		apps = append(apps, &app)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// Update rewrites the editable fields of a pending application. Decided
// applications are never updated through this path.
func (r *ApplicationRepository) Update(ctx context.Context, app *models.InternshipApplication) error {
	query := `
		UPDATE internship_applications
		SET company_name = $1, company_address = $2, company_contact = $3, role_title = $4,
			start_date = $5, end_date = $6, stipend_monthly = $7, updated_at = NOW()
		WHERE id = $8 AND status = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		app.CompanyName, app.CompanyAddress, app.CompanyContact, app.RoleTitle,
		app.StartDate, app.EndDate, app.StipendMonthly,
		app.ID, models.ApplicationPending)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotPending
	}

	return nil
}

// Decide records an approval or rejection. The status guard in the WHERE
// clause keeps concurrent decisions from overwriting each other.
func (r *ApplicationRepository) Decide(ctx context.Context, id int64, status models.ApplicationStatus, decidedBy int64, rejectionReason *string) error {
	query := `
		UPDATE internship_applications
		SET status = $1, decided_by = $2, decided_at = $3, rejection_reason = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		status, decidedBy, time.Now(), rejectionReason, id, models.ApplicationPending)
	if err != nil {
		return fmt.Errorf("error recording decision: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotPending
	}

	return nil
}

// UpdatePhase moves an application to a new internship phase. The caller
// validates the transition; the guard here only pins the expected current
// phase.
func (r *ApplicationRepository) UpdatePhase(ctx context.Context, id int64, from, to models.InternshipPhase, terminationReason *string) error {
	query := `
		UPDATE internship_applications
		SET phase = $1, termination_reason = $2, updated_at = NOW()
		WHERE id = $3 AND phase = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, to, terminationReason, id, from)
	if err != nil {
		return fmt.Errorf("error updating phase: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidPhaseChange
	}

	return nil
}

// ListActive retrieves all applications currently in the ACTIVE phase.
// Used by the overdue report reminder job.
func (r *ApplicationRepository) ListActive(ctx context.Context) ([]*models.InternshipApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM internship_applications WHERE phase = $1`

	rows, err := r.db.Query(ctx, query, models.PhaseActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.InternshipApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}
