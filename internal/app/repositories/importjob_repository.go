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

// ImportJobRepository handles database operations for bulk import jobs
type ImportJobRepository struct {
	db *pgxpool.Pool
}

// NewImportJobRepository creates a new ImportJobRepository
func NewImportJobRepository(db *pgxpool.Pool) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

const importJobColumns = `id, institution_id, uploaded_by, file_name, status, total_rows,
		processed, succeeded, failed, error, created_at, finished_at`

func scanImportJob(row pgx.Row) (*models.ImportJob, error) {
	var job models.ImportJob
	err := row.Scan(
		&job.ID,
		&job.InstitutionID,
		&job.UploadedBy,
		&job.FileName,
		&job.Status,
		&job.TotalRows,
		&job.Processed,
		&job.Succeeded,
		&job.Failed,
		&job.Error,
		&job.CreatedAt,
		&job.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrImportJobNotFound
		}
		return nil, fmt.Errorf("error retrieving import job: %w", err)
	}
	return &job, nil
}

// Create stores a new import job in QUEUED status. The caller supplies
// the UUID so it can be handed to the worker queue immediately.
func (r *ImportJobRepository) Create(ctx context.Context, job *models.ImportJob) error {
	query := `
		INSERT INTO import_jobs (id, institution_id, uploaded_by, file_name, status, total_rows)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		job.ID, job.InstitutionID, job.UploadedBy, job.FileName,
		models.ImportQueued, job.TotalRows,
	).Scan(&job.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating import job: %w", err)
	}

	job.Status = models.ImportQueued
	return nil
}

// GetByID retrieves an import job by ID
func (r *ImportJobRepository) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	query := `SELECT ` + importJobColumns + ` FROM import_jobs WHERE id = $1`
	return scanImportJob(r.db.QueryRow(ctx, query, id))
}

// ListByInstitution retrieves the import jobs of an institution, newest
// first.
func (r *ImportJobRepository) ListByInstitution(ctx context.Context, institutionID int64) ([]*models.ImportJob, error) {
	query := `
		SELECT ` + importJobColumns + `
		FROM import_jobs
		WHERE institution_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, institutionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.ImportJob
	for rows.Next() {
		job, err := scanImportJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// MarkRunning moves a queued job to RUNNING
func (r *ImportJobRepository) MarkRunning(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE import_jobs SET status = $1 WHERE id = $2 AND status = $3`,
		models.ImportRunning, id, models.ImportQueued)
	if err != nil {
		return fmt.Errorf("error starting import job: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrImportJobNotFound
	}
	return nil
}

// UpdateProgress records processed/succeeded/failed counters of a running
// job.
func (r *ImportJobRepository) UpdateProgress(ctx context.Context, id string, processed, succeeded, failed int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE import_jobs SET processed = $1, succeeded = $2, failed = $3 WHERE id = $4`,
		processed, succeeded, failed, id)
	if err != nil {
		return fmt.Errorf("error updating import progress: %w", err)
	}
	return nil
}

// Finish stamps the terminal status of a job
func (r *ImportJobRepository) Finish(ctx context.Context, id string, status models.ImportStatus, jobError *string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE import_jobs SET status = $1, error = $2, finished_at = $3 WHERE id = $4`,
		status, jobError, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error finishing import job: %w", err)
	}
	return nil
}

// AddRowErrors records the rejected rows of a job in one batch
func (r *ImportJobRepository) AddRowErrors(ctx context.Context, jobID string, rowErrors []*models.ImportRowError) error {
	if len(rowErrors) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rowErr := range rowErrors {
		batch.Queue(
			`INSERT INTO import_row_errors (job_id, row_number, message) VALUES ($1, $2, $3)`,
			jobID, rowErr.RowNumber, rowErr.Message)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range rowErrors {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error recording row errors: %w", err)
		}
	}

	return nil
}

// ListRowErrors retrieves the rejected rows of a job ordered by row number
func (r *ImportJobRepository) ListRowErrors(ctx context.Context, jobID string) ([]*models.ImportRowError, error) {
	query := `
		SELECT id, job_id, row_number, message
		FROM import_row_errors
		WHERE job_id = $1
		ORDER BY row_number
	`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rowErrors []*models.ImportRowError
	for rows.Next() {
		var rowErr models.ImportRowError
		if err := rows.Scan(&rowErr.ID, &rowErr.JobID, &rowErr.RowNumber, &rowErr.Message); err != nil {
			return nil, err
		}
		rowErrors = append(rowErrors, &rowErr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rowErrors, nil
}

// PurgeFinishedBefore deletes finished jobs older than the cutoff along
// with their row errors. Returns the number of jobs removed.
func (r *ImportJobRepository) PurgeFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `
		DELETE FROM import_jobs
		WHERE finished_at IS NOT NULL AND finished_at < $1`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("error purging import jobs: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
