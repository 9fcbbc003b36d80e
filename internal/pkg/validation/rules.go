package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Enrollment number pattern - two-digit year, four-letter institution
	// code, four-digit serial (e.g. 23GPTC0042)
	EnrollmentPattern = `^\d{2}[A-Z]{4}\d{4}$`

	// Academic term pattern (e.g. 2025-26)
	AcademicTermPattern = `^\d{4}-\d{2}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email        *regexp.Regexp
	Enrollment   *regexp.Regexp
	AcademicTerm *regexp.Regexp
}{
	Email:        regexp.MustCompile(EmailPattern),
	Enrollment:   regexp.MustCompile(EnrollmentPattern),
	AcademicTerm: regexp.MustCompile(AcademicTermPattern),
}

// IsValidEmail reports whether the address matches the email pattern.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidEnrollmentNo reports whether the enrollment number matches the
// state directorate format.
func IsValidEnrollmentNo(no string) bool {
	return CompiledPatterns.Enrollment.MatchString(no)
}

// IsValidAcademicTerm reports whether the term looks like "2025-26".
func IsValidAcademicTerm(term string) bool {
	return CompiledPatterns.AcademicTerm.MatchString(term)
}

// StringValidation validates a string value against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}
