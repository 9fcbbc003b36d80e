package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// TicketFilter narrows ticket listings. Nil fields are ignored.
type TicketFilter struct {
	InstitutionID *int64
	CreatorID     *int64
	AssigneeID    *int64
	Status        *models.TicketStatus
	Priority      *models.TicketPriority
}

// TicketRepository handles database operations for support tickets and
// their comments.
type TicketRepository struct {
	db *pgxpool.Pool
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, number, institution_id, title, description, category, priority,
		status, creator_id, assignee_id, resolved_at, closed_at, created_at, updated_at`

func scanTicket(row pgx.Row) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	err := row.Scan(
		&ticket.ID,
		&ticket.Number,
		&ticket.InstitutionID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatorID,
		&ticket.AssigneeID,
		&ticket.ResolvedAt,
		&ticket.ClosedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, fmt.Errorf("error retrieving ticket: %w", err)
	}
	return &ticket, nil
}

// NextTicketNumber draws the next ticket number from the database
// sequence, formatted as TKT-<year>-<sequence>.
func (r *TicketRepository) NextTicketNumber(ctx context.Context, year int) (string, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `SELECT nextval('ticket_number_seq')`).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("error generating ticket number: %w", err)
	}
	return fmt.Sprintf("TKT-%d-%05d", year, seq), nil
}

// Create creates a new support ticket in OPEN status
func (r *TicketRepository) Create(ctx context.Context, ticket *models.SupportTicket) error {
	query := `
		INSERT INTO support_tickets
			(number, institution_id, title, description, category, priority, status, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		ticket.Number, ticket.InstitutionID, ticket.Title, ticket.Description,
		ticket.Category, ticket.Priority, models.TicketOpen, ticket.CreatorID,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating ticket: %w", err)
	}

	ticket.Status = models.TicketOpen
	return nil
}

// GetByID retrieves a support ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*models.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id = $1`
	return scanTicket(r.db.QueryRow(ctx, query, id))
}

// List retrieves a filtered page of tickets ordered newest first
func (r *TicketRepository) List(ctx context.Context, filter TicketFilter, offset, limit int) ([]*models.SupportTicket, int64, error) {
	query := squirrel.Select(
		"id", "number", "institution_id", "title", "description", "category",
		"priority", "status", "creator_id", "assignee_id", "resolved_at",
		"closed_at", "created_at", "updated_at",
	).
		From("support_tickets").
		PlaceholderFormat(squirrel.Dollar)

	if filter.InstitutionID != nil {
		query = query.Where("institution_id = ?", *filter.InstitutionID)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	query = query.Column("COUNT(*) OVER()").
		OrderBy("created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var tickets []*models.SupportTicket
	var total int64
	for rows.Next() {
		var ticket models.SupportTicket
		err := rows.Scan(
			&ticket.ID,
			&ticket.Number,
			&ticket.InstitutionID,
			&ticket.Title,
			&ticket.Description,
			&ticket.Category,
			&ticket.Priority,
			&ticket.Status,
			&ticket.CreatorID,
			&ticket.AssigneeID,
			&ticket.ResolvedAt,
			&ticket.ClosedAt,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// Assign sets the assignee and moves the ticket to ASSIGNED. Only open
// tickets can be assigned.
func (r *TicketRepository) Assign(ctx context.Context, id, assigneeID int64) error {
	query := `
		UPDATE support_tickets
		SET assignee_id = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, assigneeID, models.TicketAssigned, id, models.TicketOpen)
	if err != nil {
		return fmt.Errorf("error assigning ticket: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTicketChange
	}

	return nil
}

// UpdateStatus moves a ticket to a new status, stamping resolved_at and
// closed_at at the matching transitions. The phase guard pins the expected
// current status so concurrent updates lose cleanly.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, from, to models.TicketStatus) error {
	var resolvedAt, closedAt *time.Time
	now := time.Now()
	switch to {
	case models.TicketResolved:
		resolvedAt = &now
	case models.TicketClosed:
		closedAt = &now
	}

	query := `
		UPDATE support_tickets
		SET status = $1,
			resolved_at = COALESCE($2, resolved_at),
			closed_at = COALESCE($3, closed_at),
			updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, to, resolvedAt, closedAt, id, from)
	if err != nil {
		return fmt.Errorf("error updating ticket status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTicketChange
	}

	return nil
}

// AddComment creates a new comment on a ticket
func (r *TicketRepository) AddComment(ctx context.Context, comment *models.TicketComment) error {
	query := `
		INSERT INTO ticket_comments (ticket_id, user_id, content, is_internal)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.TicketID, comment.UserID, comment.Content, comment.IsInternal,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// ListComments retrieves the comments of a ticket with their authors,
// oldest first. Internal comments are filtered out unless includeInternal
// is set.
func (r *TicketRepository) ListComments(ctx context.Context, ticketID int64, includeInternal bool) ([]*models.TicketComment, error) {
	query := `
		SELECT c.id, c.ticket_id, c.user_id, c.content, c.is_internal, c.created_at,
			u.id, u.email, u.first_name, u.last_name, u.role_type
		FROM ticket_comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.ticket_id = $1 AND (c.is_internal = FALSE OR $2)
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, ticketID, includeInternal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.TicketComment
	for rows.Next() {
		var comment models.TicketComment
		var author models.User
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.UserID,
			&comment.Content,
			&comment.IsInternal,
			&comment.CreatedAt,
			&author.ID,
			&author.Email,
			&author.FirstName,
			&author.LastName,
			&author.RoleType,
		); err != nil {
			return nil, err
		}
		comment.Author = &author
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
