package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// TicketService handles support ticket operations
type TicketService struct {
	ticketRepo    *repositories.TicketRepository
	userRepo      *repositories.UserRepository
	notifications *NotificationService
	logger        zerolog.Logger
}

// NewTicketService creates a new TicketService
func NewTicketService(
	ticketRepo *repositories.TicketRepository,
	userRepo *repositories.UserRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
) *TicketService {
	return &TicketService{
		ticketRepo:    ticketRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// Create opens a new support ticket for the calling user
func (s *TicketService) Create(ctx context.Context, actor auth.Actor, req *dto.CreateTicketRequest) (*models.SupportTicket, error) {
	number, err := s.ticketRepo.NextTicketNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}

	ticket := &models.SupportTicket{
		Number:        number,
		InstitutionID: actor.InstitutionID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      models.TicketPriority(req.Priority),
		CreatorID:     actor.UserID,
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("ticketID", ticket.ID).
		Str("number", ticket.Number).
		Str("priority", req.Priority).
		Msg("Support ticket created")

	return ticket, nil
}

// Get retrieves a ticket, enforcing ownership and tenant scoping
func (s *TicketService) Get(ctx context.Context, actor auth.Actor, id int64) (*models.SupportTicket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(actor, ticket); err != nil {
		return nil, err
	}

	s.attachUsers(ctx, ticket)
	return ticket, nil
}

// List retrieves a filtered page of tickets within the actor's scope.
// Students only see their own tickets.
func (s *TicketService) List(ctx context.Context, actor auth.Actor, filter repositories.TicketFilter, offset, limit int) ([]*models.SupportTicket, int64, error) {
	switch {
	case actor.Role == models.RoleStudent || actor.Role == models.RoleIndustry:
		filter.CreatorID = &actor.UserID
		filter.InstitutionID = nil
	case !actor.IsDirectorate():
		filter.InstitutionID = actor.InstitutionID
	}

	return s.ticketRepo.List(ctx, filter, offset, limit)
}

// Assign hands an open ticket to a staff user and notifies them
func (s *TicketService) Assign(ctx context.Context, actor auth.Actor, id int64, req *dto.AssignTicketRequest) (*models.SupportTicket, error) {
	if err := actor.RequireRole(models.RolePrincipal, models.RoleDirectorate); err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.InstitutionID != nil {
		if err := actor.CanAccessInstitution(*ticket.InstitutionID); err != nil {
			return nil, err
		}
	} else if !actor.IsDirectorate() {
		return nil, apperrors.NewForbiddenError("only directorate staff handle directorate tickets")
	}

	assignee, err := s.userRepo.GetUserByID(ctx, req.AssigneeID)
	if err != nil {
		return nil, err
	}
	if assignee.RoleType == models.RoleStudent || assignee.RoleType == models.RoleIndustry {
		return nil, apperrors.NewBadRequestError("tickets can only be assigned to staff users")
	}

	if err := s.ticketRepo.Assign(ctx, id, req.AssigneeID); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, req.AssigneeID, models.NotifyTicketUpdate,
		fmt.Sprintf("Ticket %s assigned to you", ticket.Number),
		fmt.Sprintf("Support ticket %s (%s) was assigned to you.", ticket.Number, ticket.Title))

	return s.ticketRepo.GetByID(ctx, id)
}

// ChangeStatus moves a ticket through its workflow and notifies the
// creator.
func (s *TicketService) ChangeStatus(ctx context.Context, actor auth.Actor, id int64, req *dto.TicketStatusRequest) (*models.SupportTicket, error) {
	if !actor.IsStaff() {
		return nil, apperrors.NewForbiddenError("only staff can change ticket status")
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, ticket); err != nil {
		return nil, err
	}

	to := models.TicketStatus(req.Status)
	if !models.ValidTicketStatus(to) {
		return nil, apperrors.ErrInvalidTicketChange
	}
	if !models.CanTransitionTicket(ticket.Status, to) {
		return nil, apperrors.ErrInvalidTicketChange
	}
	if ticket.AssigneeID == nil {
		return nil, apperrors.ErrTicketAssigneeRequired
	}

	if err := s.ticketRepo.UpdateStatus(ctx, id, ticket.Status, to); err != nil {
		return nil, err
	}

	s.notifications.Notify(ctx, ticket.CreatorID, models.NotifyTicketUpdate,
		fmt.Sprintf("Ticket %s is %s", ticket.Number, to),
		fmt.Sprintf("Your support ticket %s moved to %s.", ticket.Number, to))

	s.logger.Info().
		Int64("ticketID", id).
		Str("from", string(ticket.Status)).
		Str("to", string(to)).
		Msg("Ticket status changed")

	return s.ticketRepo.GetByID(ctx, id)
}

// AddComment posts a comment on a ticket. Students cannot post internal
// comments.
func (s *TicketService) AddComment(ctx context.Context, actor auth.Actor, ticketID int64, req *dto.AddCommentRequest) (*models.TicketComment, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, ticket); err != nil {
		return nil, err
	}

	if req.IsInternal && !actor.IsStaff() {
		return nil, apperrors.NewForbiddenError("internal comments are restricted to staff")
	}

	comment := &models.TicketComment{
		TicketID:   ticketID,
		UserID:     actor.UserID,
		Content:    req.Content,
		IsInternal: req.IsInternal,
	}

	if err := s.ticketRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	// Let the other side of the conversation know
	if actor.UserID != ticket.CreatorID && !req.IsInternal {
		s.notifications.Notify(ctx, ticket.CreatorID, models.NotifyTicketUpdate,
			fmt.Sprintf("New reply on %s", ticket.Number),
			fmt.Sprintf("Your support ticket %s has a new reply.", ticket.Number))
	}

	return comment, nil
}

// ListComments retrieves a ticket's comments. Internal comments are
// visible to staff only.
func (s *TicketService) ListComments(ctx context.Context, actor auth.Actor, ticketID int64) ([]*models.TicketComment, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, ticket); err != nil {
		return nil, err
	}

	return s.ticketRepo.ListComments(ctx, ticketID, actor.IsStaff())
}

// authorize checks read access to a ticket
func (s *TicketService) authorize(actor auth.Actor, ticket *models.SupportTicket) error {
	if ticket.CreatorID == actor.UserID {
		return nil
	}
	if actor.IsDirectorate() {
		return nil
	}
	if actor.IsStaff() && ticket.InstitutionID != nil && actor.SameInstitution(*ticket.InstitutionID) {
		return nil
	}
	return apperrors.NewForbiddenError("no access to this ticket")
}

func (s *TicketService) attachUsers(ctx context.Context, ticket *models.SupportTicket) {
	if creator, err := s.userRepo.GetUserByID(ctx, ticket.CreatorID); err == nil {
		ticket.Creator = creator
	}
	if ticket.AssigneeID != nil {
		if assignee, err := s.userRepo.GetUserByID(ctx, *ticket.AssigneeID); err == nil {
			ticket.Assignee = assignee
		}
	}
}
