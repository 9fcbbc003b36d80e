package models

import "time"

// NotificationKind categorizes notifications for filtering and display.
type NotificationKind string

const (
	NotifyApplicationDecision NotificationKind = "APPLICATION_DECISION"
	NotifyPhaseChange         NotificationKind = "PHASE_CHANGE"
	NotifyReportReview        NotificationKind = "REPORT_REVIEW"
	NotifyReportOverdue       NotificationKind = "REPORT_OVERDUE"
	NotifyMentorAssigned      NotificationKind = "MENTOR_ASSIGNED"
	NotifyTicketUpdate        NotificationKind = "TICKET_UPDATE"
	NotifyGrievanceResolved   NotificationKind = "GRIEVANCE_RESOLVED"
	NotifyImportFinished      NotificationKind = "IMPORT_FINISHED"
)

// Notification defines a user notification based on the 'notifications'
// table.
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Kind      NotificationKind `json:"kind" db:"kind" example:"REPORT_REVIEW"`
	Title     string           `json:"title" db:"title"`
	Body      string           `json:"body" db:"body"`
	ReadAt    *time.Time       `json:"readAt,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
