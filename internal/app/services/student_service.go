package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// StudentService handles student profile operations
type StudentService struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetByID retrieves a student, enforcing tenant scoping
func (s *StudentService) GetByID(ctx context.Context, actor auth.Actor, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleStudent {
		// Students can only see themselves
		if student.UserID != actor.UserID {
			return nil, apperrors.NewForbiddenError("students can only view their own profile")
		}
		return student, nil
	}

	if err := actor.CanAccessInstitution(student.InstitutionID); err != nil {
		return nil, err
	}

	return student, nil
}

// GetOwn retrieves the student profile of the calling user
func (s *StudentService) GetOwn(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// Update updates a student's program and semester. Students may update
// only themselves, staff updates are restricted to the principal of the
// student's institution and the directorate.
func (s *StudentService) Update(ctx context.Context, actor auth.Actor, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeUpdate(actor, student); err != nil {
		return nil, err
	}

	student.Program = req.Program
	student.Semester = req.Semester

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// authorizeUpdate checks write access to a student profile
func (s *StudentService) authorizeUpdate(actor auth.Actor, student *models.Student) error {
	if actor.Role == models.RoleStudent {
		if student.UserID != actor.UserID {
			return apperrors.NewForbiddenError("students can only update their own profile")
		}
		return nil
	}

	if err := actor.RequireRole(models.RolePrincipal, models.RoleDirectorate); err != nil {
		return err
	}
	return actor.CanAccessInstitution(student.InstitutionID)
}

// ListByInstitution retrieves a page of an institution's students,
// optionally filtered by a name or enrollment number search term.
func (s *StudentService) ListByInstitution(ctx context.Context, actor auth.Actor, institutionID int64, search string, offset, limit int) ([]*models.Student, int64, error) {
	if err := actor.CanAccessInstitution(institutionID); err != nil {
		return nil, 0, err
	}

	return s.studentRepo.ListByInstitution(ctx, institutionID, search, offset, limit)
}

// ListFaculty retrieves the faculty members of an institution
func (s *StudentService) ListFaculty(ctx context.Context, actor auth.Actor, institutionID int64) ([]*models.User, error) {
	if err := actor.CanAccessInstitution(institutionID); err != nil {
		return nil, err
	}

	return s.userRepo.ListFacultyByInstitution(ctx, institutionID)
}
