package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// GrievanceService handles student grievance operations. Grievances are
// visible only to the student, the principal of their institution and
// the directorate.
type GrievanceService struct {
	grievanceRepo *repositories.GrievanceRepository
	studentRepo   *repositories.StudentRepository
	notifications *NotificationService
	logger        zerolog.Logger
}

// NewGrievanceService creates a new GrievanceService
func NewGrievanceService(
	grievanceRepo *repositories.GrievanceRepository,
	studentRepo *repositories.StudentRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
) *GrievanceService {
	return &GrievanceService{
		grievanceRepo: grievanceRepo,
		studentRepo:   studentRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// Create files a grievance for the calling student
func (s *GrievanceService) Create(ctx context.Context, actor auth.Actor, req *dto.CreateGrievanceRequest) (*models.Grievance, error) {
	if err := actor.RequireRole(models.RoleStudent); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	grievance := &models.Grievance{
		StudentID:     student.ID,
		InstitutionID: student.InstitutionID,
		Subject:       req.Subject,
		Detail:        req.Detail,
	}

	if err := s.grievanceRepo.Create(ctx, grievance); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("grievanceID", grievance.ID).
		Int64("institutionID", student.InstitutionID).
		Msg("Grievance filed")

	return grievance, nil
}

// List retrieves grievances within the actor's scope. Students see only
// their own, principals their institution's, the directorate all.
func (s *GrievanceService) List(ctx context.Context, actor auth.Actor) ([]*models.Grievance, error) {
	switch actor.Role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		return s.grievanceRepo.ListByStudent(ctx, student.ID)
	case models.RolePrincipal:
		return s.grievanceRepo.List(ctx, actor.InstitutionID)
	case models.RoleDirectorate:
		return s.grievanceRepo.List(ctx, nil)
	}
	return nil, apperrors.NewForbiddenError("no access to grievances")
}

// Get retrieves one grievance, enforcing the same scoping as List
func (s *GrievanceService) Get(ctx context.Context, actor auth.Actor, id int64) (*models.Grievance, error) {
	grievance, err := s.grievanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, grievance); err != nil {
		return nil, err
	}

	if student, err := s.studentRepo.GetByID(ctx, grievance.StudentID); err == nil {
		grievance.Student = student
	}

	return grievance, nil
}

// MarkUnderReview moves an open grievance to UNDER_REVIEW
func (s *GrievanceService) MarkUnderReview(ctx context.Context, actor auth.Actor, id int64) (*models.Grievance, error) {
	grievance, err := s.grievanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeStaff(actor, grievance); err != nil {
		return nil, err
	}

	if err := s.grievanceRepo.MarkUnderReview(ctx, id); err != nil {
		return nil, err
	}

	return s.grievanceRepo.GetByID(ctx, id)
}

// Resolve records the resolution of a grievance and notifies the
// student.
func (s *GrievanceService) Resolve(ctx context.Context, actor auth.Actor, id int64, req *dto.ResolveGrievanceRequest) (*models.Grievance, error) {
	grievance, err := s.grievanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeStaff(actor, grievance); err != nil {
		return nil, err
	}

	if err := s.grievanceRepo.Resolve(ctx, id, actor.UserID, req.Resolution); err != nil {
		return nil, err
	}

	if student, err := s.studentRepo.GetByID(ctx, grievance.StudentID); err == nil {
		s.notifications.Notify(ctx, student.UserID, models.NotifyGrievanceResolved,
			"Grievance resolved",
			fmt.Sprintf("Your grievance %q has been resolved.", grievance.Subject))
	}

	return s.grievanceRepo.GetByID(ctx, id)
}

func (s *GrievanceService) authorize(ctx context.Context, actor auth.Actor, grievance *models.Grievance) error {
	if actor.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if grievance.StudentID != student.ID {
			return apperrors.NewForbiddenError("grievance belongs to another student")
		}
		return nil
	}
	return s.authorizeStaff(actor, grievance)
}

func (s *GrievanceService) authorizeStaff(actor auth.Actor, grievance *models.Grievance) error {
	if err := actor.RequireRole(models.RolePrincipal, models.RoleDirectorate); err != nil {
		return err
	}
	return actor.CanAccessInstitution(grievance.InstitutionID)
}
