package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/dberrors"
)

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student profile
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, institution_id, enrollment_no, program, semester)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID, student.InstitutionID, student.EnrollmentNo,
		student.Program, student.Semester,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_enrollment_no_key") {
			return apperrors.ErrEnrollmentNoExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// CreateTx creates a student profile inside an existing transaction.
func (r *StudentRepository) CreateTx(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, institution_id, enrollment_no, program, semester)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		student.UserID, student.InstitutionID, student.EnrollmentNo,
		student.Program, student.Semester,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_enrollment_no_key") {
			return apperrors.ErrEnrollmentNoExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var user models.User
	err := row.Scan(
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
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	user.RoleType = models.RoleStudent
	user.InstitutionID = &student.InstitutionID
	student.User = &user
	return &student, nil
}

const studentSelect = `
	SELECT s.id, s.user_id, s.institution_id, s.enrollment_no, s.program, s.semester,
		u.id, u.email, u.first_name, u.last_name, u.is_active
	FROM students s
	JOIN users u ON u.id = s.user_id`

// GetByID retrieves a student with the linked user account
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.id = $1`, id))
}

// GetByUserID retrieves the student profile of a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
}

// GetByEnrollmentNo retrieves a student by enrollment number
func (r *StudentRepository) GetByEnrollmentNo(ctx context.Context, enrollmentNo string) (*models.Student, error) {
	return scanStudent(r.db.QueryRow(ctx, studentSelect+` WHERE s.enrollment_no = $1`, enrollmentNo))
}

// EnrollmentNoExists checks if an enrollment number is already registered
func (r *StudentRepository) EnrollmentNoExists(ctx context.Context, enrollmentNo string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE enrollment_no = $1)`, enrollmentNo).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment number: %w", err)
	}
	return exists, nil
}

// Update updates a student's program and semester
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET program = $1, semester = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, student.Program, student.Semester, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// studentListQuery builds the paginated listing query. A non-empty search
// term matches names and enrollment numbers case-insensitively.
func studentListQuery(institutionID int64, search string, offset, limit int) squirrel.SelectBuilder {
	query := squirrel.Select(
		"s.id", "s.user_id", "s.institution_id", "s.enrollment_no", "s.program", "s.semester",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.is_active",
		"COUNT(*) OVER()",
	).
		From("students s").
		Join("users u ON u.id = s.user_id").
		Where("s.institution_id = ?", institutionID).
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"(u.first_name ILIKE ? OR u.last_name ILIKE ? OR s.enrollment_no ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	return query.OrderBy("s.enrollment_no").
		Offset(uint64(offset)).
		Limit(uint64(limit))
}

// ListByInstitution retrieves a page of students of an institution ordered
// by enrollment number, with the total count for pagination.
func (r *StudentRepository) ListByInstitution(ctx context.Context, institutionID int64, search string, offset, limit int) ([]*models.Student, int64, error) {
	sql, args, err := studentListQuery(institutionID, search, offset, limit).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var total int64
	for rows.Next() {
		var student models.Student
		var user models.User
		err := rows.Scan(
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
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		user.RoleType = models.RoleStudent
		user.InstitutionID = &student.InstitutionID
		student.User = &user
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}
