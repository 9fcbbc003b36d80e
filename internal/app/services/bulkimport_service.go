package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/jobs"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// csvHeader is the required column order of a student import file.
var csvHeader = []string{"email", "first_name", "last_name", "enrollment_no", "program", "semester"}

// BulkImportService accepts student CSV uploads, records the job and
// hands the parsed rows to the import worker.
type BulkImportService struct {
	importJobRepo   *repositories.ImportJobRepository
	institutionRepo *repositories.InstitutionRepository
	importer        *jobs.Importer
	logger          zerolog.Logger
}

// NewBulkImportService creates a new BulkImportService
func NewBulkImportService(
	importJobRepo *repositories.ImportJobRepository,
	institutionRepo *repositories.InstitutionRepository,
	importer *jobs.Importer,
	logger zerolog.Logger,
) *BulkImportService {
	return &BulkImportService{
		importJobRepo:   importJobRepo,
		institutionRepo: institutionRepo,
		importer:        importer,
		logger:          logger,
	}
}

// CreateJob parses the uploaded CSV, stores a QUEUED job and enqueues it
// for the worker. Principals import into their own institution; the
// directorate must name the target institution.
func (s *BulkImportService) CreateJob(ctx context.Context, actor auth.Actor, institutionID *int64, fileName string, file io.Reader) (*models.ImportJob, error) {
	if err := actor.RequireRole(models.RolePrincipal, models.RoleDirectorate); err != nil {
		return nil, err
	}

	var target int64
	switch {
	case actor.IsDirectorate():
		if institutionID == nil {
			return nil, apperrors.NewBadRequestError("institutionId is required")
		}
		target = *institutionID
	default:
		target = *actor.InstitutionID
		if institutionID != nil && *institutionID != target {
			return nil, apperrors.NewForbiddenError("resource belongs to another institution")
		}
	}

	if _, err := s.institutionRepo.GetByID(ctx, target); err != nil {
		return nil, err
	}

	rows, err := parseStudentCSV(file)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewBadRequestError("import file has no data rows")
	}

	job := &models.ImportJob{
		ID:            uuid.NewString(),
		InstitutionID: target,
		UploadedBy:    actor.UserID,
		FileName:      fileName,
		TotalRows:     len(rows),
	}
	if err := s.importJobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	task := &jobs.ImportTask{
		JobID:         job.ID,
		InstitutionID: target,
		UploadedBy:    actor.UserID,
		Rows:          rows,
	}
	if err := s.importer.Enqueue(task); err != nil {
		message := err.Error()
		if finishErr := s.importJobRepo.Finish(ctx, job.ID, models.ImportFailed, &message); finishErr != nil {
			s.logger.Error().Err(finishErr).Str("jobID", job.ID).Msg("Could not fail unqueued import job")
		}
		return nil, apperrors.NewConflictError("import queue is full, try again later")
	}

	s.logger.Info().
		Str("jobID", job.ID).
		Int64("institutionID", target).
		Int("rows", len(rows)).
		Msg("Import job queued")
	return job, nil
}

// GetJob retrieves a job with its recorded row errors
func (s *BulkImportService) GetJob(ctx context.Context, actor auth.Actor, id string) (*models.ImportJob, []*models.ImportRowError, error) {
	job, err := s.importJobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := actor.CanAccessInstitution(job.InstitutionID); err != nil {
		return nil, nil, err
	}

	rowErrors, err := s.importJobRepo.ListRowErrors(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return job, rowErrors, nil
}

// ListJobs retrieves an institution's import jobs, newest first
func (s *BulkImportService) ListJobs(ctx context.Context, actor auth.Actor, institutionID *int64) ([]*models.ImportJob, error) {
	if err := actor.RequireRole(models.RolePrincipal, models.RoleDirectorate); err != nil {
		return nil, err
	}

	var target int64
	switch {
	case actor.IsDirectorate():
		if institutionID == nil {
			return nil, apperrors.NewBadRequestError("institutionId is required")
		}
		target = *institutionID
	default:
		target = *actor.InstitutionID
	}

	return s.importJobRepo.ListByInstitution(ctx, target)
}

// parseStudentCSV reads the upload into rows for the worker. Only the
// header and the field count are checked here; field-level validation
// happens in the worker so every problem ends up as a recorded row
// error.
func parseStudentCSV(file io.Reader) ([]jobs.StudentRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrImportFileInvalid, "import file is empty or not a CSV")
	}
	if len(header) != len(csvHeader) {
		return nil, apperrors.NewCustomError(apperrors.ErrImportFileInvalid,
			"expected header: "+strings.Join(csvHeader, ","))
	}
	for idx, column := range csvHeader {
		if strings.ToLower(strings.TrimSpace(header[idx])) != column {
			return nil, apperrors.NewCustomError(apperrors.ErrImportFileInvalid,
				"expected header: "+strings.Join(csvHeader, ","))
		}
	}

	var rows []jobs.StudentRow
	// Header is line 1, data starts at line 2
	lineNo := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			rows = append(rows, jobs.StudentRow{RowNumber: lineNo, ParseErr: "malformed CSV line"})
			continue
		}
		if len(record) != len(csvHeader) {
			rows = append(rows, jobs.StudentRow{
				RowNumber: lineNo,
				ParseErr:  fmt.Sprintf("expected %d columns, got %d", len(csvHeader), len(record)),
			})
			continue
		}

		rows = append(rows, jobs.StudentRow{
			RowNumber:    lineNo,
			Email:        record[0],
			FirstName:    record[1],
			LastName:     record[2],
			EnrollmentNo: record[3],
			Program:      record[4],
			Semester:     record[5],
		})
	}

	return rows, nil
}
