package dto

import "time"

// APIResponse is the standard envelope for API responses.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Message   string       `json:"message,omitempty" example:"Operation completed successfully"`
	Timestamp time.Time    `json:"timestamp" example:"2026-04-23T12:01:05.123Z"`
}

// SuccessResponse represents a minimal success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewPaginatedResponse wraps items with their pagination metadata.
func NewPaginatedResponse(items interface{}, pagination PaginationInfo) PaginatedResponse {
	return PaginatedResponse{
		Items:      items,
		Pagination: pagination,
	}
}
