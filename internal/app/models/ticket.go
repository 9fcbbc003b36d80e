package models

import "time"

// TicketStatus tracks the support ticket workflow.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketAssigned   TicketStatus = "ASSIGNED"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

// TicketPriority is the urgency label on a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

// ticketTransitions lists the legal status moves. RESOLVED may reopen to
// IN_PROGRESS; CLOSED is terminal.
var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:       {TicketAssigned},
	TicketAssigned:   {TicketInProgress},
	TicketInProgress: {TicketResolved},
	TicketResolved:   {TicketClosed, TicketInProgress},
}

// CanTransitionTicket reports whether a ticket may move from one status to
// another.
func CanTransitionTicket(from, to TicketStatus) bool {
	for _, next := range ticketTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketOpen, TicketAssigned, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// SupportTicket defines a support ticket based on the 'support_tickets'
// table. Number is generated as TKT-<year>-<sequence>.
type SupportTicket struct {
	ID            int64          `json:"id" db:"id"`
	Number        string         `json:"number" db:"number" example:"TKT-2026-00017"`
	InstitutionID *int64         `json:"institutionId,omitempty" db:"institution_id"`
	Title         string         `json:"title" db:"title"`
	Description   string         `json:"description" db:"description"`
	Category      string         `json:"category" db:"category" example:"PORTAL_ACCESS"`
	Priority      TicketPriority `json:"priority" db:"priority" example:"MEDIUM"`
	Status        TicketStatus   `json:"status" db:"status" example:"OPEN"`
	CreatorID     int64          `json:"creatorId" db:"creator_id"`
	AssigneeID    *int64         `json:"assigneeId,omitempty" db:"assignee_id"`
	ResolvedAt    *time.Time     `json:"resolvedAt,omitempty" db:"resolved_at"`
	ClosedAt      *time.Time     `json:"closedAt,omitempty" db:"closed_at"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Creator  *User `json:"creator,omitempty"`
	Assignee *User `json:"assignee,omitempty"`
}

// TicketComment defines a comment on a support ticket. Internal comments
// are visible to staff only.
type TicketComment struct {
	ID         int64     `json:"id" db:"id"`
	TicketID   int64     `json:"ticketId" db:"ticket_id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Content    string    `json:"content" db:"content"`
	IsInternal bool      `json:"isInternal" db:"is_internal"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Author *User `json:"author,omitempty"`
}

// GrievanceStatus tracks a grievance's state.
type GrievanceStatus string

const (
	GrievanceOpen        GrievanceStatus = "OPEN"
	GrievanceUnderReview GrievanceStatus = "UNDER_REVIEW"
	GrievanceResolved    GrievanceStatus = "RESOLVED"
)

// Grievance defines a student grievance based on the 'grievances' table.
// Unlike support tickets these are visible only to the principal of the
// student's institution and the directorate.
type Grievance struct {
	ID            int64           `json:"id" db:"id"`
	StudentID     int64           `json:"studentId" db:"student_id"`
	InstitutionID int64           `json:"institutionId" db:"institution_id"`
	Subject       string          `json:"subject" db:"subject"`
	Detail        string          `json:"detail" db:"detail"`
	Status        GrievanceStatus `json:"status" db:"status" example:"OPEN"`
	Resolution    *string         `json:"resolution,omitempty" db:"resolution"`
	ResolvedBy    *int64          `json:"resolvedBy,omitempty" db:"resolved_by"`
	ResolvedAt    *time.Time      `json:"resolvedAt,omitempty" db:"resolved_at"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
}
