package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"student@gptc.ac.in",
		"first.last@example.com",
		"a+b@sub.domain.org",
	}
	invalid := []string{
		"",
		"no-at-sign",
		"UPPER@example.com",
		"user@",
		"@example.com",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidEnrollmentNo(t *testing.T) {
	assert.True(t, IsValidEnrollmentNo("23GPTC0042"))
	assert.True(t, IsValidEnrollmentNo("26ABCD9999"))
	assert.False(t, IsValidEnrollmentNo("23gptc0042"))
	assert.False(t, IsValidEnrollmentNo("GPTC0042"))
	assert.False(t, IsValidEnrollmentNo("23GPTC42"))
	assert.False(t, IsValidEnrollmentNo(""))
}

func TestIsValidAcademicTerm(t *testing.T) {
	assert.True(t, IsValidAcademicTerm("2025-26"))
	assert.False(t, IsValidAcademicTerm("2025"))
	assert.False(t, IsValidAcademicTerm("25-26"))
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("hello").WithMinLength(2).WithMaxLength(10).Validate())
	assert.False(t, NewStringValidation("h").WithMinLength(2).Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).WithMinLength(5).Validate())
	assert.False(t, NewStringValidation("nope").WithPattern(CompiledPatterns.Enrollment).Validate())
}
