package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// VisitService handles faculty visit log operations
type VisitService struct {
	visitRepo           *repositories.VisitRepository
	applicationRepo     *repositories.ApplicationRepository
	studentRepo         *repositories.StudentRepository
	mentorRepo          *repositories.MentorRepository
	visitIntervalMonths int
	logger              zerolog.Logger
}

// NewVisitService creates a new VisitService
func NewVisitService(
	visitRepo *repositories.VisitRepository,
	applicationRepo *repositories.ApplicationRepository,
	studentRepo *repositories.StudentRepository,
	mentorRepo *repositories.MentorRepository,
	visitIntervalMonths int,
	logger zerolog.Logger,
) *VisitService {
	return &VisitService{
		visitRepo:           visitRepo,
		applicationRepo:     applicationRepo,
		studentRepo:         studentRepo,
		mentorRepo:          mentorRepo,
		visitIntervalMonths: visitIntervalMonths,
		logger:              logger,
	}
}

// Create logs a mentor visit for an active internship. The visit date
// must fall inside the internship window and not in the future.
func (s *VisitService) Create(ctx context.Context, actor auth.Actor, req *dto.CreateVisitRequest) (*models.VisitLog, error) {
	if err := actor.RequireRole(models.RoleFaculty); err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Phase != models.PhaseActive {
		return nil, apperrors.ErrApplicationNotActive
	}

	isMentor, err := s.mentorRepo.IsMentorOf(ctx, actor.UserID, app.StudentID)
	if err != nil {
		return nil, err
	}
	if !isMentor {
		return nil, apperrors.ErrNotAMentor
	}

	visitDate, err := time.Parse(dateLayout, req.VisitDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("visitDate must be formatted as YYYY-MM-DD")
	}
	if visitDate.After(time.Now()) {
		return nil, apperrors.NewBadRequestError("visitDate cannot be in the future")
	}
	if !withinWindow(visitDate, app.StartDate, app.EndDate) {
		return nil, apperrors.ErrVisitOutsideWindow
	}

	visit := &models.VisitLog{
		ApplicationID: req.ApplicationID,
		FacultyID:     actor.UserID,
		VisitDate:     visitDate,
		Mode:          models.VisitMode(req.Mode),
		Remarks:       req.Remarks,
	}

	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("visitID", visit.ID).
		Int64("applicationID", req.ApplicationID).
		Str("mode", req.Mode).
		Msg("Visit logged")

	return visit, nil
}

// ListByApplication retrieves the visit logs of an application
func (s *VisitService) ListByApplication(ctx context.Context, actor auth.Actor, applicationID int64) ([]*models.VisitLog, error) {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, actor, app); err != nil {
		return nil, err
	}

	return s.visitRepo.ListByApplication(ctx, applicationID)
}

// ListOwn retrieves the calling faculty member's visit logs
func (s *VisitService) ListOwn(ctx context.Context, facultyID int64) ([]*models.VisitLog, error) {
	return s.visitRepo.ListByFaculty(ctx, facultyID)
}

// VisitStatus reports expected versus logged visits for an application
func (s *VisitService) VisitStatus(ctx context.Context, actor auth.Actor, applicationID int64) (*dto.CycleStatusResponse, error) {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, actor, app); err != nil {
		return nil, err
	}

	expected := ExpectedVisits(app.StartDate, app.EndDate, time.Now(), s.visitIntervalMonths)
	logged, err := s.visitRepo.CountByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	pending := expected - int(logged)
	if pending < 0 {
		pending = 0
	}

	return &dto.CycleStatusResponse{
		ApplicationID: applicationID,
		Expected:      expected,
		Submitted:     int(logged),
		Pending:       pending,
	}, nil
}

func (s *VisitService) authorizeRead(ctx context.Context, actor auth.Actor, app *models.InternshipApplication) error {
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
