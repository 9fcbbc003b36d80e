package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// ReportService handles monthly progress report operations
type ReportService struct {
	reportRepo      *repositories.ReportRepository
	applicationRepo *repositories.ApplicationRepository
	studentRepo     *repositories.StudentRepository
	mentorRepo      *repositories.MentorRepository
	notifications   *NotificationService
	logger          zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo *repositories.ReportRepository,
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	mentorRepo *repositories.MentorRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:      reportRepo,
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		mentorRepo:      mentorRepo,
		notifications:   notifications,
		logger:          logger,
	}
}

// Submit files a monthly report for an active internship. The period
// must fall inside the internship window and each month accepts exactly
// one report. A report sent back for revision is resubmitted in place.
func (s *ReportService) Submit(ctx context.Context, actor auth.Actor, req *dto.SubmitReportRequest) (*models.MonthlyReport, error) {
	student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != student.ID {
		return nil, apperrors.NewForbiddenError("application belongs to another student")
	}
	if app.Phase != models.PhaseActive {
		return nil, apperrors.ErrApplicationNotActive
	}

	if !periodInWindow(req.PeriodYear, req.PeriodMonth, app.StartDate, app.EndDate) {
		return nil, apperrors.ErrReportOutsideWindow
	}

	// A NEEDS_REVISION report for the same month is revised, not duplicated
	existing, err := s.reportRepo.ListByApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	for _, report := range existing {
		if report.PeriodYear == req.PeriodYear && report.PeriodMonth == req.PeriodMonth {
			if report.Status != models.ReportNeedsRevision {
				return nil, apperrors.ErrReportAlreadySubmitted
			}
			report.Summary = req.Summary
			report.HoursWorked = req.HoursWorked
			if err := s.reportRepo.Resubmit(ctx, report); err != nil {
				return nil, err
			}
			report.Status = models.ReportSubmitted
			report.Feedback = nil
			return report, nil
		}
	}

	report := &models.MonthlyReport{
		ApplicationID: req.ApplicationID,
		StudentID:     student.ID,
		PeriodYear:    req.PeriodYear,
		PeriodMonth:   req.PeriodMonth,
		Summary:       req.Summary,
		HoursWorked:   req.HoursWorked,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("reportID", report.ID).
		Int64("applicationID", req.ApplicationID).
		Int("year", req.PeriodYear).
		Int("month", req.PeriodMonth).
		Msg("Monthly report submitted")

	return report, nil
}

// Review records a mentor's verdict on a submitted report and notifies
// the student.
func (s *ReportService) Review(ctx context.Context, actor auth.Actor, reportID int64, req *dto.ReviewReportRequest) (*models.MonthlyReport, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, report.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReviewer(ctx, actor, app); err != nil {
		return nil, err
	}
	if report.Status != models.ReportSubmitted {
		return nil, apperrors.NewConflictError("report has already been reviewed")
	}

	status := models.ReportApproved
	var feedback *string
	if !req.Approve {
		if req.Feedback == "" {
			return nil, apperrors.ErrDecisionReasonMissing
		}
		status = models.ReportNeedsRevision
	}
	if req.Feedback != "" {
		feedback = &req.Feedback
	}

	if err := s.reportRepo.Review(ctx, reportID, status, actor.UserID, feedback); err != nil {
		return nil, err
	}

	report.Status = status
	report.Feedback = feedback
	now := time.Now()
	report.ReviewedBy = &actor.UserID
	report.ReviewedAt = &now

	student, err := s.studentRepo.GetByID(ctx, report.StudentID)
	if err == nil {
		s.notifications.Notify(ctx, student.UserID, models.NotifyReportReview,
			fmt.Sprintf("Report %d/%d %s", report.PeriodMonth, report.PeriodYear, status),
			fmt.Sprintf("Your monthly report for %d/%d was marked %s.", report.PeriodMonth, report.PeriodYear, status))
	}

	return report, nil
}

// ListByApplication retrieves the reports of an application
func (s *ReportService) ListByApplication(ctx context.Context, actor auth.Actor, applicationID int64) ([]*models.MonthlyReport, error) {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, actor, app); err != nil {
		return nil, err
	}

	return s.reportRepo.ListByApplication(ctx, applicationID)
}

// CycleStatus reports expected versus submitted reports for an
// application.
func (s *ReportService) CycleStatus(ctx context.Context, actor auth.Actor, applicationID int64) (*dto.CycleStatusResponse, error) {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, actor, app); err != nil {
		return nil, err
	}

	expected := ExpectedReports(app.StartDate, app.EndDate, time.Now())
	submitted, approved, err := s.reportRepo.CountByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	pending := expected - int(submitted)
	if pending < 0 {
		pending = 0
	}

	return &dto.CycleStatusResponse{
		ApplicationID: applicationID,
		Expected:      expected,
		Submitted:     int(submitted),
		Approved:      int(approved),
		Pending:       pending,
	}, nil
}

func (s *ReportService) authorizeRead(ctx context.Context, actor auth.Actor, app *models.InternshipApplication) error {
	if actor.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if app.StudentID != student.ID {
			return apperrors.NewForbiddenError("application belongs to another student")
		}
		return nil
	}
	return actor.CanAccessInstitution(app.InstitutionID)
}

func (s *ReportService) authorizeReviewer(ctx context.Context, actor auth.Actor, app *models.InternshipApplication) error {
	if err := actor.RequireRole(models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate); err != nil {
		return err
	}
	if err := actor.CanAccessInstitution(app.InstitutionID); err != nil {
		return err
	}
	if actor.Role == models.RoleFaculty {
		isMentor, err := s.mentorRepo.IsMentorOf(ctx, actor.UserID, app.StudentID)
		if err != nil {
			return err
		}
		if !isMentor {
			return apperrors.ErrNotAMentor
		}
	}
	return nil
}

// RemindOverdue notifies students of active internships whose expected
// report count exceeds what they have submitted. Run daily by the
// scheduler.
func (s *ReportService) RemindOverdue(ctx context.Context) error {
	applications, err := s.applicationRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	reminded := 0
	for _, app := range applications {
		expected := ExpectedReports(app.StartDate, app.EndDate, now)
		submitted, _, err := s.reportRepo.CountByApplication(ctx, app.ID)
		if err != nil {
			s.logger.Error().Err(err).Int64("applicationID", app.ID).Msg("Could not count reports for reminder")
			continue
		}
		if int64(expected) <= submitted {
			continue
		}

		student, err := s.studentRepo.GetByID(ctx, app.StudentID)
		if err != nil {
			s.logger.Error().Err(err).Int64("studentID", app.StudentID).Msg("Could not load student for reminder")
			continue
		}

		s.notifications.Notify(ctx, student.UserID, models.NotifyReportOverdue,
			"Monthly report overdue",
			fmt.Sprintf("Your internship at %s expects %d reports but has %d. Please submit the missing ones.",
				app.CompanyName, expected, submitted))
		reminded++
	}

	if reminded > 0 {
		s.logger.Info().Int("reminded", reminded).Msg("Overdue report reminders sent")
	}
	return nil
}
