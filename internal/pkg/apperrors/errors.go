package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Institution errors
var (
	ErrInstitutionNotFound      = errors.New("institution not found")
	ErrInstitutionAlreadyExists = errors.New("institution with this name or code already exists")
	ErrInstitutionHasRelations  = errors.New("institution has enrolled students and cannot be deleted")
)

// Student errors
var (
	ErrStudentNotFound         = errors.New("student not found")
	ErrEnrollmentNoExists      = errors.New("enrollment number already exists")
	ErrInvalidEnrollmentNumber = errors.New("invalid enrollment number format")
)

// Internship application errors
var (
	ErrApplicationNotFound   = errors.New("internship application not found")
	ErrApplicationNotPending = errors.New("application is no longer pending")
	ErrApplicationNotActive  = errors.New("internship is not active")
	ErrInvalidPhaseChange    = errors.New("invalid internship phase transition")
	ErrDecisionReasonMissing = errors.New("a reason is required for this decision")
)

// Mentor assignment errors
var (
	ErrMentorAssignmentNotFound = errors.New("mentor assignment not found")
	ErrMentorAlreadyAssigned    = errors.New("student already has a mentor for this term")
	ErrNotAMentor               = errors.New("faculty member is not assigned to this student")
)

// Monthly report errors
var (
	ErrReportNotFound         = errors.New("monthly report not found")
	ErrReportAlreadySubmitted = errors.New("a report for this month was already submitted")
	ErrReportOutsideWindow    = errors.New("report period is outside the internship window")
)

// Visit log errors
var (
	ErrVisitNotFound      = errors.New("visit log not found")
	ErrVisitOutsideWindow = errors.New("visit date is outside the internship window")
)

// Support ticket errors
var (
	ErrTicketNotFound         = errors.New("support ticket not found")
	ErrInvalidTicketChange    = errors.New("invalid ticket status transition")
	ErrTicketAssigneeRequired = errors.New("ticket must be assigned before this transition")
)

// Grievance errors
var (
	ErrGrievanceNotFound      = errors.New("grievance not found")
	ErrInvalidGrievanceChange = errors.New("invalid grievance status transition")
)

// Import job errors
var (
	ErrImportJobNotFound = errors.New("import job not found")
	ErrImportFileInvalid = errors.New("import file could not be parsed")
)

// Token format errors
var (
	ErrInvalidFormat = errors.New("invalid token format")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
