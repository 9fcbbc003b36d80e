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
	"github.com/tejasnv/internhub/internal/pkg/validation"
)

// MentorService handles mentor assignment operations. Principals assign
// faculty mentors to students of their institution.
type MentorService struct {
	mentorRepo    *repositories.MentorRepository
	studentRepo   *repositories.StudentRepository
	userRepo      *repositories.UserRepository
	notifications *NotificationService
	logger        zerolog.Logger
}

// NewMentorService creates a new MentorService
func NewMentorService(
	mentorRepo *repositories.MentorRepository,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
) *MentorService {
	return &MentorService{
		mentorRepo:    mentorRepo,
		studentRepo:   studentRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// Assign links a faculty mentor to a student for an academic term. The
// faculty member and the student must belong to the actor's institution.
func (s *MentorService) Assign(ctx context.Context, actor auth.Actor, req *dto.AssignMentorRequest) (*models.MentorAssignment, error) {
	if !validation.IsValidAcademicTerm(req.AcademicTerm) {
		return nil, apperrors.NewBadRequestError("academicTerm must be formatted like 2025-26")
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := actor.CanAccessInstitution(student.InstitutionID); err != nil {
		return nil, err
	}

	faculty, err := s.userRepo.GetUserByID(ctx, req.FacultyID)
	if err != nil {
		return nil, err
	}
	if faculty.RoleType != models.RoleFaculty {
		return nil, apperrors.NewBadRequestError("assignee is not a faculty member")
	}
	if faculty.InstitutionID == nil || *faculty.InstitutionID != student.InstitutionID {
		return nil, apperrors.NewConflictError("mentor and student must belong to the same institution")
	}

	assignment := &models.MentorAssignment{
		FacultyID:    req.FacultyID,
		StudentID:    req.StudentID,
		AcademicTerm: req.AcademicTerm,
	}

	if err := s.mentorRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, faculty.ID, models.NotifyMentorAssigned,
		"New mentee assigned",
		fmt.Sprintf("You were assigned as mentor of %s for %s.", student.EnrollmentNo, req.AcademicTerm))
	s.notifications.Notify(ctx, student.UserID, models.NotifyMentorAssigned,
		"Mentor assigned",
		fmt.Sprintf("%s is your faculty mentor for %s.", faculty.FullName(), req.AcademicTerm))

	s.logger.Info().
		Int64("facultyID", req.FacultyID).
		Int64("studentID", req.StudentID).
		Str("term", req.AcademicTerm).
		Msg("Mentor assigned")

	return assignment, nil
}

// Unassign removes a mentor assignment
func (s *MentorService) Unassign(ctx context.Context, actor auth.Actor, id int64) error {
	assignment, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	student, err := s.studentRepo.GetByID(ctx, assignment.StudentID)
	if err != nil {
		return err
	}
	if err := actor.CanAccessInstitution(student.InstitutionID); err != nil {
		return err
	}

	return s.mentorRepo.Delete(ctx, id)
}

// ListMentees retrieves the calling faculty member's assignments
func (s *MentorService) ListMentees(ctx context.Context, facultyID int64) ([]*models.MentorAssignment, error) {
	return s.mentorRepo.ListByFaculty(ctx, facultyID)
}

// ListByStudent retrieves the mentor assignments of a student
func (s *MentorService) ListByStudent(ctx context.Context, actor auth.Actor, studentID int64) ([]*models.MentorAssignment, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleStudent {
		if student.UserID != actor.UserID {
			return nil, apperrors.NewForbiddenError("students can only view their own mentors")
		}
	} else if err := actor.CanAccessInstitution(student.InstitutionID); err != nil {
		return nil, err
	}

	return s.mentorRepo.ListByStudent(ctx, studentID)
}
