package dto

import (
	"time"

	"github.com/tejasnv/internhub/internal/app/models"
)

// ImportJobResponse represents the state of a bulk import job
type ImportJobResponse struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	FileName   string     `json:"fileName"`
	TotalRows  int        `json:"totalRows"`
	Processed  int        `json:"processed"`
	Succeeded  int        `json:"succeeded"`
	Failed     int        `json:"failed"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// FromImportJob converts an import job model into its response DTO.
func FromImportJob(j *models.ImportJob) ImportJobResponse {
	if j == nil {
		return ImportJobResponse{}
	}
	resp := ImportJobResponse{
		ID:         j.ID,
		Status:     string(j.Status),
		FileName:   j.FileName,
		TotalRows:  j.TotalRows,
		Processed:  j.Processed,
		Succeeded:  j.Succeeded,
		Failed:     j.Failed,
		CreatedAt:  j.CreatedAt,
		FinishedAt: j.FinishedAt,
	}
	if j.Error != nil {
		resp.Error = *j.Error
	}
	return resp
}

// ImportJobDetailResponse bundles an import job with its rejected rows
type ImportJobDetailResponse struct {
	Job       ImportJobResponse        `json:"job"`
	RowErrors []ImportRowErrorResponse `json:"rowErrors"`
}

// ImportRowErrorResponse represents a single rejected row of an import job
type ImportRowErrorResponse struct {
	RowNumber int    `json:"rowNumber"`
	Message   string `json:"message"`
}

// FromImportRowError converts a row error model into its response DTO.
func FromImportRowError(e *models.ImportRowError) ImportRowErrorResponse {
	if e == nil {
		return ImportRowErrorResponse{}
	}
	return ImportRowErrorResponse{
		RowNumber: e.RowNumber,
		Message:   e.Message,
	}
}
