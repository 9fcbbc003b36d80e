package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/email"
	"github.com/tejasnv/internhub/internal/pkg/ws"
)

// NotificationService stores notifications and fans them out over the
// WebSocket hub and email.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	hub              *ws.Hub
	mailer           email.Mailer
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo *repositories.UserRepository,
	hub *ws.Hub,
	mailer email.Mailer,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
		mailer:           mailer,
		logger:           logger,
	}
}

// Notify stores a notification for a user and pushes it to their open
// WebSocket connections and email. Delivery failures are logged, never
// propagated; the stored row is the source of truth.
func (s *NotificationService) Notify(ctx context.Context, userID int64, kind models.NotificationKind, title, body string) {
	notification := &models.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Str("kind", string(kind)).Msg("Failed to store notification")
		return
	}

	s.hub.PushToUser(&ws.Event{
		UserID:         userID,
		Kind:           string(kind),
		Title:          title,
		Body:           body,
		NotificationID: notification.ID,
		Timestamp:      time.Now(),
	})

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Could not load user for notification email")
		return
	}

	if err := s.mailer.SendNotificationEmail(user.Email, user.FullName(), title, body); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to send notification email")
	}
}

// List retrieves a page of the user's notifications
func (s *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool, offset, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.ListByUser(ctx, userID, unreadOnly, offset, limit)
}

// UnreadCount returns the number of unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one notification of the user as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks every unread notification of the user as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
