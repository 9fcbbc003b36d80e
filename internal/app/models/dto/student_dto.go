package dto

import "github.com/tejasnv/internhub/internal/app/models"

// UpdateStudentRequest represents updates to a student profile
type UpdateStudentRequest struct {
	Program  string `json:"program" binding:"required"`
	Semester int    `json:"semester" binding:"required,min=1,max=8"`
}

// StudentResponse represents a student with user and institution context
type StudentResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	EnrollmentNo    string `json:"enrollmentNo"`
	Program         string `json:"program"`
	Semester        int    `json:"semester"`
	InstitutionID   int64  `json:"institutionId"`
	InstitutionName string `json:"institutionName,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Email           string `json:"email,omitempty"`
}

// FromStudent converts a student model into a StudentResponse.
func FromStudent(student *models.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}

	resp := StudentResponse{
		ID:            student.ID,
		UserID:        student.UserID,
		EnrollmentNo:  student.EnrollmentNo,
		Program:       student.Program,
		Semester:      student.Semester,
		InstitutionID: student.InstitutionID,
	}

	if student.User != nil {
		resp.FirstName = student.User.FirstName
		resp.LastName = student.User.LastName
		resp.Email = student.User.Email
	}
	if student.Institution != nil {
		resp.InstitutionName = student.Institution.Name
	}

	return resp
}
