package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/dberrors"
)

// MentorRepository handles database operations for mentor assignments
type MentorRepository struct {
	db *pgxpool.Pool
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(db *pgxpool.Pool) *MentorRepository {
	return &MentorRepository{db: db}
}

// Create creates a new mentor assignment. A student can have only one
// mentor per academic term.
func (r *MentorRepository) Create(ctx context.Context, assignment *models.MentorAssignment) error {
	query := `
		INSERT INTO mentor_assignments (faculty_id, student_id, academic_term)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		assignment.FacultyID, assignment.StudentID, assignment.AcademicTerm,
	).Scan(&assignment.ID, &assignment.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrMentorAlreadyAssigned
		}
		return fmt.Errorf("error creating mentor assignment: %w", err)
	}

	return nil
}

// GetByID retrieves a mentor assignment by ID
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*models.MentorAssignment, error) {
	query := `
		SELECT id, faculty_id, student_id, academic_term, created_at
		FROM mentor_assignments
		WHERE id = $1
	`

	var assignment models.MentorAssignment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.FacultyID,
		&assignment.StudentID,
		&assignment.AcademicTerm,
		&assignment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMentorAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving mentor assignment: %w", err)
	}

	return &assignment, nil
}

// Delete removes a mentor assignment
func (r *MentorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM mentor_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting mentor assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMentorAssignmentNotFound
	}
	return nil
}

// IsMentorOf checks whether a faculty member mentors the given student in
// any term.
func (r *MentorRepository) IsMentorOf(ctx context.Context, facultyID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM mentor_assignments WHERE faculty_id = $1 AND student_id = $2)`,
		facultyID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking mentor assignment: %w", err)
	}
	return exists, nil
}

// ListByFaculty retrieves all assignments of a faculty mentor with the
// student profiles attached.
func (r *MentorRepository) ListByFaculty(ctx context.Context, facultyID int64) ([]*models.MentorAssignment, error) {
	query := `
		SELECT m.id, m.faculty_id, m.student_id, m.academic_term, m.created_at,
			s.id, s.user_id, s.institution_id, s.enrollment_no, s.program, s.semester,
			u.id, u.email, u.first_name, u.last_name, u.is_active
		FROM mentor_assignments m
		JOIN students s ON s.id = m.student_id
		JOIN users u ON u.id = s.user_id
		WHERE m.faculty_id = $1
		ORDER BY m.academic_term DESC, s.enrollment_no
	`

	rows, err := r.db.Query(ctx, query, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.MentorAssignment
	for rows.Next() {
		var assignment models.MentorAssignment
		var student models.Student
		var user models.User
		if err := rows.Scan(
			&assignment.ID,
			&assignment.FacultyID,
			&assignment.StudentID,
			&assignment.AcademicTerm,
			&assignment.CreatedAt,
			&student.ID,
			&student.UserID,
			&student.InstitutionID,
			&student.EnrollmentNo,
			&student.Program,
			&student.Semester,
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.IsActive,
		); err != nil {
			return nil, err
		}
		user.RoleType = models.RoleStudent
		student.User = &user
		assignment.Student = &student
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// ListByStudent retrieves all mentor assignments of a student with the
// faculty user attached.
func (r *MentorRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.MentorAssignment, error) {
	query := `
		SELECT m.id, m.faculty_id, m.student_id, m.academic_term, m.created_at,
			u.id, u.email, u.first_name, u.last_name, u.is_active
		FROM mentor_assignments m
		JOIN users u ON u.id = m.faculty_id
		WHERE m.student_id = $1
		ORDER BY m.academic_term DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.MentorAssignment
	for rows.Next() {
		var assignment models.MentorAssignment
		var faculty models.User
		if err := rows.Scan(
			&assignment.ID,
			&assignment.FacultyID,
			&assignment.StudentID,
			&assignment.AcademicTerm,
			&assignment.CreatedAt,
			&faculty.ID,
			&faculty.Email,
			&faculty.FirstName,
			&faculty.LastName,
			&faculty.IsActive,
		); err != nil {
			return nil, err
		}
		faculty.RoleType = models.RoleFaculty
		assignment.Faculty = &faculty
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
