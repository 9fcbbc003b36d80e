// Package jobs hosts the background workers: the bulk import queue and
// the cron scheduler.
package jobs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/db"
	"github.com/tejasnv/internhub/internal/pkg/auth"
	"github.com/tejasnv/internhub/internal/pkg/validation"
)

// Notifier delivers a notification to a user. Satisfied by the
// notification service.
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind models.NotificationKind, title, body string)
}

// StudentRow is one parsed line of an import file. ParseErr carries a
// structural problem found while reading the CSV; such rows are counted
// as failed without further validation.
type StudentRow struct {
	RowNumber    int
	Email        string
	FirstName    string
	LastName     string
	EnrollmentNo string
	Program      string
	Semester     string
	ParseErr     string
}

// ImportTask is a queued import job together with its parsed rows. Rows
// live in memory only; the job record in the database tracks progress.
type ImportTask struct {
	JobID         string
	InstitutionID int64
	UploadedBy    int64
	Rows          []StudentRow
}

// Importer consumes import tasks from a buffered channel with a single
// worker goroutine, so imports never compete with each other for the
// database.
type Importer struct {
	db            *db.PostgresDB
	importJobRepo *repositories.ImportJobRepository
	userRepo      *repositories.UserRepository
	studentRepo   *repositories.StudentRepository
	notifier      Notifier
	queue         chan *ImportTask
	batchSize     int
	maxRetries    int
	wg            sync.WaitGroup
	logger        zerolog.Logger
}

// NewImporter creates an Importer with the given queue capacity
func NewImporter(
	database *db.PostgresDB,
	importJobRepo *repositories.ImportJobRepository,
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	notifier Notifier,
	queueSize, batchSize, maxRetries int,
	logger zerolog.Logger,
) *Importer {
	return &Importer{
		db:            database,
		importJobRepo: importJobRepo,
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		notifier:      notifier,
		queue:         make(chan *ImportTask, queueSize),
		batchSize:     batchSize,
		maxRetries:    maxRetries,
		logger:        logger,
	}
}

// Start launches the worker goroutine
func (i *Importer) Start() {
	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		for task := range i.queue {
			i.process(context.Background(), task)
		}
	}()
	i.logger.Info().Int("queueSize", cap(i.queue)).Msg("Import worker started")
}

// Enqueue hands a task to the worker. Returns an error when the queue is
// full so the caller can fail the job instead of blocking a request.
func (i *Importer) Enqueue(task *ImportTask) error {
	select {
	case i.queue <- task:
		return nil
	default:
		return fmt.Errorf("import queue is full")
	}
}

// Stop closes the queue and waits for the worker to drain it
func (i *Importer) Stop() {
	close(i.queue)
	i.wg.Wait()
	i.logger.Info().Msg("Import worker stopped")
}

func (i *Importer) process(ctx context.Context, task *ImportTask) {
	start := time.Now()

	if err := i.importJobRepo.MarkRunning(ctx, task.JobID); err != nil {
		i.logger.Error().Err(err).Str("jobID", task.JobID).Msg("Could not start import job")
		return
	}

	var (
		processed int
		succeeded int
		rowErrors []*models.ImportRowError
	)

	fail := func(row StudentRow, message string) {
		rowErrors = append(rowErrors, &models.ImportRowError{
			JobID:     task.JobID,
			RowNumber: row.RowNumber,
			Message:   message,
		})
	}

	seenEmails := make(map[string]bool, len(task.Rows))
	seenEnrollments := make(map[string]bool, len(task.Rows))

	var batch []StudentRow
	for _, row := range task.Rows {
		processed++

		if msg := i.validateRow(ctx, &row, seenEmails, seenEnrollments); msg != "" {
			fail(row, msg)
		} else {
			batch = append(batch, row)
		}

		if len(batch) >= i.batchSize {
			succeeded += i.insertBatch(ctx, task, batch, fail)
			batch = batch[:0]
			i.reportProgress(ctx, task.JobID, processed, succeeded, len(rowErrors))
		}
	}
	if len(batch) > 0 {
		succeeded += i.insertBatch(ctx, task, batch, fail)
	}
	i.reportProgress(ctx, task.JobID, processed, succeeded, len(rowErrors))

	if err := i.importJobRepo.AddRowErrors(ctx, task.JobID, rowErrors); err != nil {
		i.logger.Error().Err(err).Str("jobID", task.JobID).Msg("Could not record import row errors")
	}

	status := models.ImportCompleted
	if len(rowErrors) > 0 {
		status = models.ImportHasErrors
	}
	if err := i.importJobRepo.Finish(ctx, task.JobID, status, nil); err != nil {
		i.logger.Error().Err(err).Str("jobID", task.JobID).Msg("Could not finish import job")
	}

	i.logger.Info().
		Str("jobID", task.JobID).
		Int("processed", processed).
		Int("succeeded", succeeded).
		Int("failed", len(rowErrors)).
		Dur("duration", time.Since(start)).
		Msg("Import job finished")

	i.notifier.Notify(ctx, task.UploadedBy, models.NotifyImportFinished,
		"Student import finished",
		fmt.Sprintf("%d of %d rows imported, %d rejected.", succeeded, processed, len(rowErrors)))
}

// validateRow normalizes a row in place and returns a rejection message,
// or "" when the row is importable.
func (i *Importer) validateRow(ctx context.Context, row *StudentRow, seenEmails, seenEnrollments map[string]bool) string {
	if row.ParseErr != "" {
		return row.ParseErr
	}

	row.Email = strings.ToLower(strings.TrimSpace(row.Email))
	row.FirstName = strings.TrimSpace(row.FirstName)
	row.LastName = strings.TrimSpace(row.LastName)
	row.EnrollmentNo = strings.ToUpper(strings.TrimSpace(row.EnrollmentNo))
	row.Program = strings.TrimSpace(row.Program)

	if !validation.IsValidEmail(row.Email) {
		return "invalid email address"
	}
	if !validation.IsValidEnrollmentNo(row.EnrollmentNo) {
		return "invalid enrollment number format"
	}
	if len(row.FirstName) < validation.NameMinLength || len(row.LastName) < validation.NameMinLength {
		return "first and last name are required"
	}
	if row.Program == "" {
		return "program is required"
	}
	semester, err := strconv.Atoi(strings.TrimSpace(row.Semester))
	if err != nil || semester < 1 || semester > 8 {
		return "semester must be a number between 1 and 8"
	}

	if seenEmails[row.Email] {
		return "duplicate email in file"
	}
	if seenEnrollments[row.EnrollmentNo] {
		return "duplicate enrollment number in file"
	}
	seenEmails[row.Email] = true
	seenEnrollments[row.EnrollmentNo] = true

	exists, err := i.userRepo.EmailExists(ctx, row.Email)
	if err != nil {
		return "could not verify email: " + err.Error()
	}
	if exists {
		return "email already registered"
	}
	exists, err = i.studentRepo.EnrollmentNoExists(ctx, row.EnrollmentNo)
	if err != nil {
		return "could not verify enrollment number: " + err.Error()
	}
	if exists {
		return "enrollment number already registered"
	}

	return ""
}

// insertBatch writes one batch in a single transaction, retrying on
// failure. Returns the number of rows inserted; on final failure every
// row of the batch is recorded as failed.
func (i *Importer) insertBatch(ctx context.Context, task *ImportTask, batch []StudentRow, fail func(StudentRow, string)) int {
	var lastErr error
	for attempt := 1; attempt <= i.maxRetries; attempt++ {
		lastErr = i.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			for _, row := range batch {
				// Accounts start with the enrollment number as password
				hashed, err := auth.HashPassword(row.EnrollmentNo)
				if err != nil {
					return fmt.Errorf("row %d: %w", row.RowNumber, err)
				}

				user := &models.User{
					Email:         row.Email,
					Password:      hashed,
					FirstName:     row.FirstName,
					LastName:      row.LastName,
					RoleType:      models.RoleStudent,
					InstitutionID: &task.InstitutionID,
					IsActive:      true,
				}
				userID, err := i.userRepo.CreateUserTx(ctx, tx, user)
				if err != nil {
					return fmt.Errorf("row %d: %w", row.RowNumber, err)
				}

				semester, _ := strconv.Atoi(strings.TrimSpace(row.Semester))
				student := &models.Student{
					UserID:        userID,
					InstitutionID: task.InstitutionID,
					EnrollmentNo:  row.EnrollmentNo,
					Program:       row.Program,
					Semester:      semester,
				}
				if err := i.studentRepo.CreateTx(ctx, tx, student); err != nil {
					return fmt.Errorf("row %d: %w", row.RowNumber, err)
				}
			}
			return nil
		})
		if lastErr == nil {
			return len(batch)
		}

		i.logger.Warn().Err(lastErr).
			Str("jobID", task.JobID).
			Int("attempt", attempt).
			Msg("Import batch failed")
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}

	for _, row := range batch {
		fail(row, "batch insert failed: "+lastErr.Error())
	}
	return 0
}

func (i *Importer) reportProgress(ctx context.Context, jobID string, processed, succeeded, failed int) {
	if err := i.importJobRepo.UpdateProgress(ctx, jobID, processed, succeeded, failed); err != nil {
		i.logger.Warn().Err(err).Str("jobID", jobID).Msg("Could not update import progress")
	}
}
