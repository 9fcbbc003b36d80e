package dto

import (
	"time"

	"github.com/tejasnv/internhub/internal/app/models"
)

// SubmitReportRequest represents a monthly progress report submission
type SubmitReportRequest struct {
	ApplicationID int64  `json:"applicationId" binding:"required,min=1"`
	PeriodYear    int    `json:"periodYear" binding:"required,min=2000,max=2100"`
	PeriodMonth   int    `json:"periodMonth" binding:"required,min=1,max=12"`
	Summary       string `json:"summary" binding:"required,min=20"`
	HoursWorked   int    `json:"hoursWorked" binding:"required,min=1,max=400"`
}

// ReviewReportRequest represents a faculty mentor's review
type ReviewReportRequest struct {
	Approve  bool   `json:"approve"`
	Feedback string `json:"feedback,omitempty"`
}

// ReportResponse represents a monthly report
type ReportResponse struct {
	ID            int64      `json:"id"`
	ApplicationID int64      `json:"applicationId"`
	StudentID     int64      `json:"studentId"`
	PeriodYear    int        `json:"periodYear"`
	PeriodMonth   int        `json:"periodMonth"`
	Summary       string     `json:"summary"`
	HoursWorked   int        `json:"hoursWorked"`
	Status        string     `json:"status"`
	Feedback      *string    `json:"feedback,omitempty"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// FromReport converts a monthly report model into its response DTO.
func FromReport(r *models.MonthlyReport) ReportResponse {
	if r == nil {
		return ReportResponse{}
	}
	return ReportResponse{
		ID:            r.ID,
		ApplicationID: r.ApplicationID,
		StudentID:     r.StudentID,
		PeriodYear:    r.PeriodYear,
		PeriodMonth:   r.PeriodMonth,
		Summary:       r.Summary,
		HoursWorked:   r.HoursWorked,
		Status:        string(r.Status),
		Feedback:      r.Feedback,
		ReviewedAt:    r.ReviewedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// CycleStatusResponse reports expected versus actual activity for an
// application (reports or visits).
type CycleStatusResponse struct {
	ApplicationID int64 `json:"applicationId"`
	Expected      int   `json:"expected"`
	Submitted     int   `json:"submitted"`
	Approved      int   `json:"approved,omitempty"`
	Pending       int   `json:"pending"`
}

// CreateVisitRequest represents a faculty visit log entry
type CreateVisitRequest struct {
	ApplicationID int64  `json:"applicationId" binding:"required,min=1"`
	VisitDate     string `json:"visitDate" binding:"required" example:"2026-03-14"`
	Mode          string `json:"mode" binding:"required,oneof=ONSITE REMOTE"`
	Remarks       string `json:"remarks" binding:"required,min=10"`
}

// VisitResponse represents a visit log
type VisitResponse struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"applicationId"`
	FacultyID     int64     `json:"facultyId"`
	FacultyName   string    `json:"facultyName,omitempty"`
	VisitDate     string    `json:"visitDate"`
	Mode          string    `json:"mode"`
	Remarks       string    `json:"remarks"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromVisit converts a visit log model into its response DTO.
func FromVisit(v *models.VisitLog) VisitResponse {
	if v == nil {
		return VisitResponse{}
	}

	resp := VisitResponse{
		ID:            v.ID,
		ApplicationID: v.ApplicationID,
		FacultyID:     v.FacultyID,
		VisitDate:     v.VisitDate.Format("2006-01-02"),
		Mode:          string(v.Mode),
		Remarks:       v.Remarks,
		CreatedAt:     v.CreatedAt,
	}

	if v.Faculty != nil {
		resp.FacultyName = v.Faculty.FullName()
	}

	return resp
}
