package models

import "time"

// ApplicationStatus tracks the approval workflow of an application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// InternshipPhase tracks the lifecycle of an approved internship.
type InternshipPhase string

const (
	PhaseNotStarted InternshipPhase = "NOT_STARTED"
	PhaseActive     InternshipPhase = "ACTIVE"
	PhaseCompleted  InternshipPhase = "COMPLETED"
	PhaseTerminated InternshipPhase = "TERMINATED"
)

// phaseTransitions lists the legal phase moves. Completed and terminated
// are terminal.
var phaseTransitions = map[InternshipPhase][]InternshipPhase{
	PhaseNotStarted: {PhaseActive},
	PhaseActive:     {PhaseCompleted, PhaseTerminated},
}

// CanTransitionPhase reports whether an internship may move from one
// phase to another.
func CanTransitionPhase(from, to InternshipPhase) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InternshipApplication defines a student's internship application based
// on the 'internship_applications' table.
type InternshipApplication struct {
	ID                int64             `json:"id" db:"id"`
	StudentID         int64             `json:"studentId" db:"student_id"`
	InstitutionID     int64             `json:"institutionId" db:"institution_id"`
	CompanyName       string            `json:"companyName" db:"company_name" example:"Kerala Startup Mission"`
	CompanyAddress    string            `json:"companyAddress" db:"company_address"`
	CompanyContact    string            `json:"companyContact" db:"company_contact" example:"hr@ksm.example.in"`
	RoleTitle         string            `json:"roleTitle" db:"role_title" example:"Junior Developer Intern"`
	StartDate         time.Time         `json:"startDate" db:"start_date"`
	EndDate           time.Time         `json:"endDate" db:"end_date"`
	StipendMonthly    *int64            `json:"stipendMonthly,omitempty" db:"stipend_monthly"`
	Status            ApplicationStatus `json:"status" db:"status" example:"PENDING"`
	Phase             InternshipPhase   `json:"phase" db:"phase" example:"NOT_STARTED"`
	DecidedBy         *int64            `json:"decidedBy,omitempty" db:"decided_by"`
	DecidedAt         *time.Time        `json:"decidedAt,omitempty" db:"decided_at"`
	RejectionReason   *string           `json:"rejectionReason,omitempty" db:"rejection_reason"`
	TerminationReason *string           `json:"terminationReason,omitempty" db:"termination_reason"`
	CreatedAt         time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}

// Window returns the internship period. End is inclusive of the end date's
// calendar day.
func (a *InternshipApplication) Window() (start, end time.Time) {
	return a.StartDate, a.EndDate
}

// CanActivateOn reports whether the internship may become active at the
// given time. Activation is allowed from the start date's calendar day,
// time of day ignored.
func (a *InternshipApplication) CanActivateOn(now time.Time) bool {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	startDay := time.Date(a.StartDate.Year(), a.StartDate.Month(), a.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(startDay)
}

// MentorAssignment links a faculty user to a student for an academic term,
// based on the 'mentor_assignments' table.
type MentorAssignment struct {
	ID           int64     `json:"id" db:"id"`
	FacultyID    int64     `json:"facultyId" db:"faculty_id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	AcademicTerm string    `json:"academicTerm" db:"academic_term" example:"2025-26"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Faculty *User    `json:"faculty,omitempty"`
	Student *Student `json:"student,omitempty"`
}
