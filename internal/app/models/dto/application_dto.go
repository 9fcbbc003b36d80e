package dto

import (
	"time"

	"github.com/tejasnv/internhub/internal/app/models"
)

// CreateApplicationRequest represents a student's internship application
type CreateApplicationRequest struct {
	CompanyName    string `json:"companyName" binding:"required,min=2,max=200"`
	CompanyAddress string `json:"companyAddress" binding:"required"`
	CompanyContact string `json:"companyContact" binding:"required,email"`
	RoleTitle      string `json:"roleTitle" binding:"required"`
	StartDate      string `json:"startDate" binding:"required" example:"2026-01-05"`
	EndDate        string `json:"endDate" binding:"required" example:"2026-06-30"`
	StipendMonthly *int64 `json:"stipendMonthly,omitempty"`
}

// UpdateApplicationRequest mirrors the create request; only pending
// applications may be updated.
type UpdateApplicationRequest = CreateApplicationRequest

// DecisionRequest represents a principal's decision on an application
type DecisionRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty"`
}

// PhaseChangeRequest represents an internship phase transition
type PhaseChangeRequest struct {
	Phase  string `json:"phase" binding:"required,oneof=ACTIVE COMPLETED TERMINATED"`
	Reason string `json:"reason,omitempty"`
}

// ApplicationResponse represents an internship application
type ApplicationResponse struct {
	ID                int64      `json:"id"`
	StudentID         int64      `json:"studentId"`
	StudentName       string     `json:"studentName,omitempty"`
	EnrollmentNo      string     `json:"enrollmentNo,omitempty"`
	InstitutionID     int64      `json:"institutionId"`
	CompanyName       string     `json:"companyName"`
	CompanyAddress    string     `json:"companyAddress"`
	CompanyContact    string     `json:"companyContact"`
	RoleTitle         string     `json:"roleTitle"`
	StartDate         string     `json:"startDate"`
	EndDate           string     `json:"endDate"`
	StipendMonthly    *int64     `json:"stipendMonthly,omitempty"`
	Status            string     `json:"status"`
	Phase             string     `json:"phase"`
	DecidedAt         *time.Time `json:"decidedAt,omitempty"`
	RejectionReason   *string    `json:"rejectionReason,omitempty"`
	TerminationReason *string    `json:"terminationReason,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// FromApplication converts an application model into its response DTO.
func FromApplication(app *models.InternshipApplication) ApplicationResponse {
	if app == nil {
		return ApplicationResponse{}
	}

	resp := ApplicationResponse{
		ID:                app.ID,
		StudentID:         app.StudentID,
		InstitutionID:     app.InstitutionID,
		CompanyName:       app.CompanyName,
		CompanyAddress:    app.CompanyAddress,
		CompanyContact:    app.CompanyContact,
		RoleTitle:         app.RoleTitle,
		StartDate:         app.StartDate.Format("2006-01-02"),
		EndDate:           app.EndDate.Format("2006-01-02"),
		StipendMonthly:    app.StipendMonthly,
		Status:            string(app.Status),
		Phase:             string(app.Phase),
		DecidedAt:         app.DecidedAt,
		RejectionReason:   app.RejectionReason,
		TerminationReason: app.TerminationReason,
		CreatedAt:         app.CreatedAt,
	}

	if app.Student != nil {
		resp.EnrollmentNo = app.Student.EnrollmentNo
		if app.Student.User != nil {
			resp.StudentName = app.Student.User.FullName()
		}
	}

	return resp
}

// AssignMentorRequest links a faculty member to a student for a term
type AssignMentorRequest struct {
	FacultyID    int64  `json:"facultyId" binding:"required,min=1"`
	StudentID    int64  `json:"studentId" binding:"required,min=1"`
	AcademicTerm string `json:"academicTerm" binding:"required" example:"2025-26"`
}

// MentorAssignmentResponse represents a mentor assignment
type MentorAssignmentResponse struct {
	ID           int64  `json:"id"`
	FacultyID    int64  `json:"facultyId"`
	FacultyName  string `json:"facultyName,omitempty"`
	StudentID    int64  `json:"studentId"`
	StudentName  string `json:"studentName,omitempty"`
	EnrollmentNo string `json:"enrollmentNo,omitempty"`
	AcademicTerm string `json:"academicTerm"`
}

// FromMentorAssignment converts a mentor assignment model into its DTO.
func FromMentorAssignment(ma *models.MentorAssignment) MentorAssignmentResponse {
	if ma == nil {
		return MentorAssignmentResponse{}
	}

	resp := MentorAssignmentResponse{
		ID:           ma.ID,
		FacultyID:    ma.FacultyID,
		StudentID:    ma.StudentID,
		AcademicTerm: ma.AcademicTerm,
	}

	if ma.Faculty != nil {
		resp.FacultyName = ma.Faculty.FullName()
	}
	if ma.Student != nil {
		resp.EnrollmentNo = ma.Student.EnrollmentNo
		if ma.Student.User != nil {
			resp.StudentName = ma.Student.User.FullName()
		}
	}

	return resp
}
