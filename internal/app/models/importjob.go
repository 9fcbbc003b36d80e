package models

import "time"

// ImportStatus tracks a bulk student import job.
type ImportStatus string

const (
	ImportQueued    ImportStatus = "QUEUED"
	ImportRunning   ImportStatus = "RUNNING"
	ImportCompleted ImportStatus = "COMPLETED"
	ImportHasErrors ImportStatus = "COMPLETED_WITH_ERRORS"
	ImportFailed    ImportStatus = "FAILED"
)

// ImportJob defines a bulk student import based on the 'import_jobs'
// table. Jobs are identified by UUID so the id can be returned before the
// row exists.
type ImportJob struct {
	ID            string       `json:"id" db:"id"`
	InstitutionID int64        `json:"institutionId" db:"institution_id"`
	UploadedBy    int64        `json:"uploadedBy" db:"uploaded_by"`
	FileName      string       `json:"fileName" db:"file_name"`
	Status        ImportStatus `json:"status" db:"status" example:"RUNNING"`
	TotalRows     int          `json:"totalRows" db:"total_rows"`
	Processed     int          `json:"processed" db:"processed"`
	Succeeded     int          `json:"succeeded" db:"succeeded"`
	Failed        int          `json:"failed" db:"failed"`
	Error         *string      `json:"error,omitempty" db:"error"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	FinishedAt    *time.Time   `json:"finishedAt,omitempty" db:"finished_at"`
}

// ImportRowError records a rejected row of an import job.
type ImportRowError struct {
	ID        int64  `json:"id" db:"id"`
	JobID     string `json:"jobId" db:"job_id"`
	RowNumber int    `json:"rowNumber" db:"row_number"`
	Message   string `json:"message" db:"message"`
}
