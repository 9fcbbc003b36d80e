package models

import "time"

// ReportStatus tracks a monthly report's review state.
type ReportStatus string

const (
	ReportSubmitted     ReportStatus = "SUBMITTED"
	ReportApproved      ReportStatus = "APPROVED"
	ReportNeedsRevision ReportStatus = "NEEDS_REVISION"
)

// MonthlyReport defines a student's monthly progress report based on the
// 'monthly_reports' table. One report per application per calendar month.
type MonthlyReport struct {
	ID            int64        `json:"id" db:"id"`
	ApplicationID int64        `json:"applicationId" db:"application_id"`
	StudentID     int64        `json:"studentId" db:"student_id"`
	PeriodYear    int          `json:"periodYear" db:"period_year" example:"2026"`
	PeriodMonth   int          `json:"periodMonth" db:"period_month" example:"3"`
	Summary       string       `json:"summary" db:"summary"`
	HoursWorked   int          `json:"hoursWorked" db:"hours_worked" example:"152"`
	Status        ReportStatus `json:"status" db:"status" example:"SUBMITTED"`
	Feedback      *string      `json:"feedback,omitempty" db:"feedback"`
	ReviewedBy    *int64       `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt    *time.Time   `json:"reviewedAt,omitempty" db:"reviewed_at"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}

// Period returns the first day of the report's month in UTC.
func (r *MonthlyReport) Period() time.Time {
	return time.Date(r.PeriodYear, time.Month(r.PeriodMonth), 1, 0, 0, 0, 0, time.UTC)
}

// VisitMode is how a faculty visit was conducted.
type VisitMode string

const (
	VisitOnsite VisitMode = "ONSITE"
	VisitRemote VisitMode = "REMOTE"
)

// VisitLog defines a faculty mentor's visit record based on the
// 'visit_logs' table.
type VisitLog struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	FacultyID     int64     `json:"facultyId" db:"faculty_id"`
	VisitDate     time.Time `json:"visitDate" db:"visit_date"`
	Mode          VisitMode `json:"mode" db:"mode" example:"ONSITE"`
	Remarks       string    `json:"remarks" db:"remarks"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Faculty *User `json:"faculty,omitempty"`
}
