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
	"github.com/tejasnv/internhub/internal/pkg/dberrors"
)

// ReportRepository handles database operations for monthly reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, application_id, student_id, period_year, period_month, summary,
		hours_worked, status, feedback, reviewed_by, reviewed_at, created_at, updated_at`

func scanReport(row pgx.Row) (*models.MonthlyReport, error) {
	var report models.MonthlyReport
	err := row.Scan(
		&report.ID,
		&report.ApplicationID,
		&report.StudentID,
		&report.PeriodYear,
		&report.PeriodMonth,
		&report.Summary,
		&report.HoursWorked,
		&report.Status,
		&report.Feedback,
		&report.ReviewedBy,
		&report.ReviewedAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("error retrieving report: %w", err)
	}
	return &report, nil
}

// Create creates a new monthly report in SUBMITTED status. The unique
// index on (application_id, period_year, period_month) blocks duplicates.
func (r *ReportRepository) Create(ctx context.Context, report *models.MonthlyReport) error {
	query := `
		INSERT INTO monthly_reports
			(application_id, student_id, period_year, period_month, summary, hours_worked, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		report.ApplicationID, report.StudentID, report.PeriodYear, report.PeriodMonth,
		report.Summary, report.HoursWorked, models.ReportSubmitted,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrReportAlreadySubmitted
		}
		return fmt.Errorf("error creating report: %w", err)
	}

	report.Status = models.ReportSubmitted
	return nil
}

// GetByID retrieves a monthly report by ID
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.MonthlyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM monthly_reports WHERE id = $1`
	return scanReport(r.db.QueryRow(ctx, query, id))
}

// ListByApplication retrieves all reports of an application ordered by
// period.
func (r *ReportRepository) ListByApplication(ctx context.Context, applicationID int64) ([]*models.MonthlyReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM monthly_reports
		WHERE application_id = $1
		ORDER BY period_year, period_month
	`

	rows, err := r.db.Query(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.MonthlyReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// Resubmit rewrites a report that was sent back for revision and moves it
// back to SUBMITTED.
func (r *ReportRepository) Resubmit(ctx context.Context, report *models.MonthlyReport) error {
	query := `
		UPDATE monthly_reports
		SET summary = $1, hours_worked = $2, status = $3,
			feedback = NULL, reviewed_by = NULL, reviewed_at = NULL, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		report.Summary, report.HoursWorked, models.ReportSubmitted,
		report.ID, models.ReportNeedsRevision)
	if err != nil {
		return fmt.Errorf("error resubmitting report: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}

	return nil
}

// Review records a mentor's review decision on a submitted report
func (r *ReportRepository) Review(ctx context.Context, id int64, status models.ReportStatus, reviewedBy int64, feedback *string) error {
	query := `
		UPDATE monthly_reports
		SET status = $1, feedback = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		status, feedback, reviewedBy, time.Now(), id, models.ReportSubmitted)
	if err != nil {
		return fmt.Errorf("error reviewing report: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}

	return nil
}

// CountByApplication returns submitted and approved report counts for an
// application. Reports awaiting revision still count as submitted.
func (r *ReportRepository) CountByApplication(ctx context.Context, applicationID int64) (submitted, approved int64, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $2)
		FROM monthly_reports
		WHERE application_id = $1
	`

	err = r.db.QueryRow(ctx, query, applicationID, models.ReportApproved).Scan(&submitted, &approved)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting reports: %w", err)
	}

	return submitted, approved, nil
}
