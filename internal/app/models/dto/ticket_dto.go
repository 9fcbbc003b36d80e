package dto

import (
	"time"

	"github.com/tejasnv/internhub/internal/app/models"
)

// CreateTicketRequest represents a new support ticket
type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required,min=5,max=200"`
	Description string `json:"description" binding:"required,min=10"`
	Category    string `json:"category" binding:"required"`
	Priority    string `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH"`
}

// AssignTicketRequest assigns a ticket to a staff user
type AssignTicketRequest struct {
	AssigneeID int64 `json:"assigneeId" binding:"required,min=1"`
}

// TicketStatusRequest moves a ticket through its workflow
type TicketStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ASSIGNED IN_PROGRESS RESOLVED CLOSED"`
}

// AddCommentRequest adds a comment to a ticket
type AddCommentRequest struct {
	Content    string `json:"content" binding:"required,min=1"`
	IsInternal bool   `json:"isInternal"`
}

// TicketResponse represents a support ticket
type TicketResponse struct {
	ID           int64      `json:"id"`
	Number       string     `json:"number"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	CreatorID    int64      `json:"creatorId"`
	CreatorName  string     `json:"creatorName,omitempty"`
	AssigneeID   *int64     `json:"assigneeId,omitempty"`
	AssigneeName string     `json:"assigneeName,omitempty"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FromTicket converts a support ticket model into its response DTO.
func FromTicket(t *models.SupportTicket) TicketResponse {
	if t == nil {
		return TicketResponse{}
	}

	resp := TicketResponse{
		ID:          t.ID,
		Number:      t.Number,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatorID:   t.CreatorID,
		AssigneeID:  t.AssigneeID,
		ResolvedAt:  t.ResolvedAt,
		ClosedAt:    t.ClosedAt,
		CreatedAt:   t.CreatedAt,
	}

	if t.Creator != nil {
		resp.CreatorName = t.Creator.FullName()
	}
	if t.Assignee != nil {
		resp.AssigneeName = t.Assignee.FullName()
	}

	return resp
}

// CommentResponse represents one ticket comment
type CommentResponse struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticketId"`
	UserID     int64     `json:"userId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromComment converts a ticket comment model into its response DTO.
func FromComment(c *models.TicketComment) CommentResponse {
	if c == nil {
		return CommentResponse{}
	}

	resp := CommentResponse{
		ID:         c.ID,
		TicketID:   c.TicketID,
		UserID:     c.UserID,
		Content:    c.Content,
		IsInternal: c.IsInternal,
		CreatedAt:  c.CreatedAt,
	}

	if c.Author != nil {
		resp.AuthorName = c.Author.FullName()
	}

	return resp
}

// CreateGrievanceRequest represents a new student grievance
type CreateGrievanceRequest struct {
	Subject string `json:"subject" binding:"required,min=5,max=200"`
	Detail  string `json:"detail" binding:"required,min=10"`
}

// ResolveGrievanceRequest resolves a grievance
type ResolveGrievanceRequest struct {
	Resolution string `json:"resolution" binding:"required,min=10"`
}

// GrievanceResponse represents a grievance
type GrievanceResponse struct {
	ID            int64      `json:"id"`
	StudentID     int64      `json:"studentId"`
	StudentName   string     `json:"studentName,omitempty"`
	EnrollmentNo  string     `json:"enrollmentNo,omitempty"`
	InstitutionID int64      `json:"institutionId"`
	Subject       string     `json:"subject"`
	Detail        string     `json:"detail"`
	Status        string     `json:"status"`
	Resolution    *string    `json:"resolution,omitempty"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// FromGrievance converts a grievance model into its response DTO.
func FromGrievance(g *models.Grievance) GrievanceResponse {
	if g == nil {
		return GrievanceResponse{}
	}

	resp := GrievanceResponse{
		ID:            g.ID,
		StudentID:     g.StudentID,
		InstitutionID: g.InstitutionID,
		Subject:       g.Subject,
		Detail:        g.Detail,
		Status:        string(g.Status),
		Resolution:    g.Resolution,
		ResolvedAt:    g.ResolvedAt,
		CreatedAt:     g.CreatedAt,
	}

	if g.Student != nil {
		resp.EnrollmentNo = g.Student.EnrollmentNo
		if g.Student.User != nil {
			resp.StudentName = g.Student.User.FullName()
		}
	}

	return resp
}
