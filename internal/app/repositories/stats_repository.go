package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
)

// StatusCounts aggregates applications by review status and phase
type StatusCounts struct {
	Pending    int64
	Approved   int64
	Rejected   int64
	NotStarted int64
	Active     int64
	Completed  int64
	Terminated int64
}

// StatsRepository runs the aggregate queries behind the dashboards
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountInstitutions returns the number of institutions
func (r *StatsRepository) CountInstitutions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM institutions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting institutions: %w", err)
	}
	return count, nil
}

// CountStudents returns the number of students, optionally scoped to one
// institution.
func (r *StatsRepository) CountStudents(ctx context.Context, institutionID *int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE $1::BIGINT IS NULL OR institution_id = $1`,
		institutionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// ApplicationCounts aggregates applications by status and phase,
// optionally scoped to one institution. Phase counts cover approved
// applications only.
func (r *StatsRepository) ApplicationCounts(ctx context.Context, institutionID *int64) (*StatusCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4),
			COUNT(*) FILTER (WHERE status = $3 AND phase = $5),
			COUNT(*) FILTER (WHERE status = $3 AND phase = $6),
			COUNT(*) FILTER (WHERE status = $3 AND phase = $7),
			COUNT(*) FILTER (WHERE status = $3 AND phase = $8)
		FROM internship_applications
		WHERE $1::BIGINT IS NULL OR institution_id = $1
	`

	var counts StatusCounts
	err := r.db.QueryRow(ctx, query, institutionID,
		models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected,
		models.PhaseNotStarted, models.PhaseActive, models.PhaseCompleted, models.PhaseTerminated,
	).Scan(
		&counts.Pending,
		&counts.Approved,
		&counts.Rejected,
		&counts.NotStarted,
		&counts.Active,
		&counts.Completed,
		&counts.Terminated,
	)
	if err != nil {
		return nil, fmt.Errorf("error counting applications: %w", err)
	}

	return &counts, nil
}

// CountOpenTickets returns the number of tickets that are not yet
// resolved or closed, optionally scoped to one institution.
func (r *StatsRepository) CountOpenTickets(ctx context.Context, institutionID *int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM support_tickets
		WHERE status NOT IN ($2, $3) AND ($1::BIGINT IS NULL OR institution_id = $1)`,
		institutionID, models.TicketResolved, models.TicketClosed).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting open tickets: %w", err)
	}
	return count, nil
}

// CountReportsPendingReview returns the number of submitted reports
// awaiting review at an institution.
func (r *StatsRepository) CountReportsPendingReview(ctx context.Context, institutionID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM monthly_reports r
		JOIN internship_applications a ON a.id = r.application_id
		WHERE r.status = $2 AND a.institution_id = $1`,
		institutionID, models.ReportSubmitted).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending reports: %w", err)
	}
	return count, nil
}
