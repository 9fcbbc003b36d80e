package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

func TestParseStudentCSV(t *testing.T) {
	input := strings.Join([]string{
		"email,first_name,last_name,enrollment_no,program,semester",
		"anu@gptc.ac.in,Anu,Varma,23GPTC0001,Computer Engineering,3",
		"ravi@gptc.ac.in,Ravi,Nair,23GPTC0002,Civil Engineering,3",
	}, "\n")

	rows, err := parseStudentCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, "anu@gptc.ac.in", rows[0].Email)
	assert.Equal(t, "Anu", rows[0].FirstName)
	assert.Equal(t, "23GPTC0001", rows[0].EnrollmentNo)
	assert.Empty(t, rows[0].ParseErr)
	assert.Equal(t, 3, rows[1].RowNumber)
}

func TestParseStudentCSVHeaderCaseInsensitive(t *testing.T) {
	input := strings.Join([]string{
		"Email, First_Name ,LAST_NAME,enrollment_no,program,semester",
		"anu@gptc.ac.in,Anu,Varma,23GPTC0001,Computer Engineering,3",
	}, "\n")

	rows, err := parseStudentCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseStudentCSVBadHeader(t *testing.T) {
	input := "email,name,enrollment\nx@y.in,X,1"

	_, err := parseStudentCSV(strings.NewReader(input))
	assert.ErrorIs(t, err, apperrors.ErrImportFileInvalid)
}

func TestParseStudentCSVEmptyFile(t *testing.T) {
	_, err := parseStudentCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrImportFileInvalid)
}

func TestParseStudentCSVWrongColumnCount(t *testing.T) {
	input := strings.Join([]string{
		"email,first_name,last_name,enrollment_no,program,semester",
		"anu@gptc.ac.in,Anu,Varma,23GPTC0001,Computer Engineering,3",
		"short@gptc.ac.in,Short",
	}, "\n")

	rows, err := parseStudentCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Empty(t, rows[0].ParseErr)
	assert.Equal(t, 3, rows[1].RowNumber)
	assert.NotEmpty(t, rows[1].ParseErr)
}
