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

const dateLayout = "2006-01-02"

// ApplicationService handles internship application operations
type ApplicationService struct {
	applicationRepo *repositories.ApplicationRepository
	studentRepo     *repositories.StudentRepository
	mentorRepo      *repositories.MentorRepository
	notifications   *NotificationService
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	mentorRepo *repositories.MentorRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		studentRepo:     studentRepo,
		mentorRepo:      mentorRepo,
		notifications:   notifications,
		logger:          logger,
	}
}

func parseWindow(startStr, endStr string) (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("startDate must be formatted as YYYY-MM-DD")
	}
	end, err = time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("endDate must be formatted as YYYY-MM-DD")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, apperrors.NewBadRequestError("endDate must be after startDate")
	}
	return start, end, nil
}

// Create files a new internship application for the calling student
func (s *ApplicationService) Create(ctx context.Context, actor auth.Actor, req *dto.CreateApplicationRequest) (*models.InternshipApplication, error) {
	student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	start, end, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	app := &models.InternshipApplication{
		StudentID:      student.ID,
		InstitutionID:  student.InstitutionID,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		CompanyContact: req.CompanyContact,
		RoleTitle:      req.RoleTitle,
		StartDate:      start,
		EndDate:        end,
		StipendMonthly: req.StipendMonthly,
	}

	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("studentID", student.ID).
		Str("company", app.CompanyName).
		Msg("Internship application filed")

	return app, nil
}

// Get retrieves an application, enforcing ownership and tenant scoping
func (s *ApplicationService) Get(ctx context.Context, actor auth.Actor, id int64) (*models.InternshipApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, app); err != nil {
		return nil, err
	}

	if student, err := s.studentRepo.GetByID(ctx, app.StudentID); err == nil {
		app.Student = student
	}

	return app, nil
}

// List retrieves a filtered page of applications within the actor's
// scope. Students only ever see their own.
func (s *ApplicationService) List(ctx context.Context, actor auth.Actor, filter repositories.ApplicationFilter, offset, limit int) ([]*models.InternshipApplication, int64, error) {
	if actor.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		filter.StudentID = &student.ID
		filter.InstitutionID = nil
	} else if !actor.IsDirectorate() {
		filter.InstitutionID = actor.InstitutionID
	}

	return s.applicationRepo.List(ctx, filter, offset, limit)
}

// Update rewrites a pending application of the calling student
func (s *ApplicationService) Update(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateApplicationRequest) (*models.InternshipApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != student.ID {
		return nil, apperrors.NewForbiddenError("application belongs to another student")
	}
	if app.Status != models.ApplicationPending {
		return nil, apperrors.ErrApplicationNotPending
	}

	start, end, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	app.CompanyName = req.CompanyName
	app.CompanyAddress = req.CompanyAddress
	app.CompanyContact = req.CompanyContact
	app.RoleTitle = req.RoleTitle
	app.StartDate = start
	app.EndDate = end
	app.StipendMonthly = req.StipendMonthly

	if err := s.applicationRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Decide approves or rejects a pending application. Rejections require a
// reason. The student is notified of the outcome.
func (s *ApplicationService) Decide(ctx context.Context, actor auth.Actor, id int64, req *dto.DecisionRequest) (*models.InternshipApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := actor.CanAccessInstitution(app.InstitutionID); err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationPending {
		return nil, apperrors.ErrApplicationNotPending
	}

	status := models.ApplicationApproved
	var rejectionReason *string
	if !req.Approve {
		if req.Reason == "" {
			return nil, apperrors.ErrDecisionReasonMissing
		}
		status = models.ApplicationRejected
		rejectionReason = &req.Reason
	}

	if err := s.applicationRepo.Decide(ctx, id, status, actor.UserID, rejectionReason); err != nil {
		return nil, err
	}

	app, err = s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyStudent(ctx, app, models.NotifyApplicationDecision,
		fmt.Sprintf("Application %s", status),
		fmt.Sprintf("Your internship application for %s was %s.", app.CompanyName, status))

	s.logger.Info().
		Int64("applicationID", id).
		Str("status", string(status)).
		Int64("decidedBy", actor.UserID).
		Msg("Application decided")

	return app, nil
}

// ChangePhase moves an approved application through the internship
// lifecycle. Termination requires a reason. The student is notified.
func (s *ApplicationService) ChangePhase(ctx context.Context, actor auth.Actor, id int64, req *dto.PhaseChangeRequest) (*models.InternshipApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeStaff(ctx, actor, app); err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationApproved {
		return nil, apperrors.NewConflictError("only approved applications have an internship phase")
	}

	to := models.InternshipPhase(req.Phase)
	if !models.CanTransitionPhase(app.Phase, to) {
		return nil, apperrors.ErrInvalidPhaseChange
	}
	if to == models.PhaseActive && !app.CanActivateOn(time.Now()) {
		return nil, apperrors.NewConflictError("internship cannot be activated before its start date")
	}

	var terminationReason *string
	if to == models.PhaseTerminated {
		if req.Reason == "" {
			return nil, apperrors.ErrDecisionReasonMissing
		}
		terminationReason = &req.Reason
	}

	if err := s.applicationRepo.UpdatePhase(ctx, id, app.Phase, to, terminationReason); err != nil {
		return nil, err
	}

	app.Phase = to
	app.TerminationReason = terminationReason

	s.notifyStudent(ctx, app, models.NotifyPhaseChange,
		fmt.Sprintf("Internship %s", to),
		fmt.Sprintf("Your internship at %s moved to %s.", app.CompanyName, to))

	return app, nil
}

// authorize checks read access to an application
func (s *ApplicationService) authorize(ctx context.Context, actor auth.Actor, app *models.InternshipApplication) error {
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

// authorizeStaff checks write access for faculty and principals. Faculty
// must mentor the student.
func (s *ApplicationService) authorizeStaff(ctx context.Context, actor auth.Actor, app *models.InternshipApplication) error {
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

func (s *ApplicationService) notifyStudent(ctx context.Context, app *models.InternshipApplication, kind models.NotificationKind, title, body string) {
	student, err := s.studentRepo.GetByID(ctx, app.StudentID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentID", app.StudentID).Msg("Could not load student for notification")
		return
	}
	s.notifications.Notify(ctx, student.UserID, kind, title, body)
}
