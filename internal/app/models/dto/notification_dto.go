package dto

import (
	"time"

	"github.com/tejasnv/internhub/internal/app/models"
)

// NotificationResponse represents one notification
type NotificationResponse struct {
	ID        int64      `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// FromNotification converts a notification model into its response DTO.
func FromNotification(n *models.Notification) NotificationResponse {
	if n == nil {
		return NotificationResponse{}
	}
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.IsRead(),
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// UnreadCountResponse reports how many notifications are unread
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}
