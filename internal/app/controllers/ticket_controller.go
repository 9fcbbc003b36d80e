package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/repositories"
	"github.com/tejasnv/internhub/internal/app/services"
	"github.com/tejasnv/internhub/internal/middleware"
	"github.com/tejasnv/internhub/internal/pkg/helpers"
)

// TicketController handles support ticket endpoints
type TicketController struct {
	ticketService *services.TicketService
	logger        zerolog.Logger
}

// NewTicketController creates a new TicketController
func NewTicketController(ticketService *services.TicketService, logger zerolog.Logger) *TicketController {
	return &TicketController{
		ticketService: ticketService,
		logger:        logger,
	}
}

// Create opens a support ticket
// @Summary Open a ticket
// @Description Opens a support ticket. The ticket number is assigned by the system.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTicketRequest true "Ticket details"
// @Success 201 {object} dto.APIResponse{data=dto.TicketResponse} "Ticket opened"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets [post]
func (c *TicketController) Create(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateTicketRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ticket, err := c.ticketService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromTicket(ticket),
		Timestamp: time.Now(),
	})
}

// List retrieves a filtered page of tickets
// @Summary List tickets
// @Description Lists tickets. Students and industry partners see their own, institution staff their institution's, the directorate everything.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(OPEN, ASSIGNED, IN_PROGRESS, RESOLVED, CLOSED)
// @Param priority query string false "Filter by priority" Enums(LOW, MEDIUM, HIGH)
// @Param assigneeId query int false "Filter by assignee"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Tickets"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets [get]
func (c *TicketController) List(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var filter repositories.TicketFilter
	if status := ctx.Query("status"); status != "" {
		s := models.TicketStatus(status)
		filter.Status = &s
	}
	if priority := ctx.Query("priority"); priority != "" {
		p := models.TicketPriority(priority)
		filter.Priority = &p
	}
	if assigneeIDStr := ctx.Query("assigneeId"); assigneeIDStr != "" {
		assigneeID, err := strconv.ParseInt(assigneeIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid assigneeId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.AssigneeID = &assigneeID
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	tickets, total, err := c.ticketService.List(ctx, actor, filter, int(offset), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.TicketResponse, 0, len(tickets))
	for _, ticket := range tickets {
		items = append(items, dto.FromTicket(ticket))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewPaginatedResponse(items, helpers.NewPaginationInfo(total, page, size)),
		Timestamp: time.Now(),
	})
}

// Get retrieves a ticket
// @Summary Get ticket by ID
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.APIResponse{data=dto.TicketResponse} "Ticket"
// @Failure 400 {object} dto.ErrorResponse "Invalid ticket ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id} [get]
func (c *TicketController) Get(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ticket, err := c.ticketService.Get(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromTicket(ticket),
		Timestamp: time.Now(),
	})
}

// Assign hands an open ticket to a staff member
// @Summary Assign a ticket
// @Description Assigns an open ticket to a staff member. Principals and the directorate only.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.AssignTicketRequest true "Assignee"
// @Success 200 {object} dto.APIResponse{data=dto.TicketResponse} "Ticket assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket or assignee not found"
// @Failure 409 {object} dto.ErrorResponse "Ticket is not open"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id}/assign [post]
func (c *TicketController) Assign(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignTicketRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ticket, err := c.ticketService.Assign(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromTicket(ticket),
		Timestamp: time.Now(),
	})
}

// ChangeStatus moves a ticket through its lifecycle
// @Summary Change ticket status
// @Description Transitions a ticket between statuses. Staff only; resolved tickets may be reopened to IN_PROGRESS.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.TicketStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.TicketResponse} "Status changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id}/status [post]
func (c *TicketController) ChangeStatus(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.TicketStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	ticket, err := c.ticketService.ChangeStatus(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromTicket(ticket),
		Timestamp: time.Now(),
	})
}

// AddComment adds a comment to a ticket
// @Summary Comment on a ticket
// @Description Adds a comment. Staff may mark a comment internal so the ticket creator does not see it.
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Param request body dto.AddCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id}/comments [post]
func (c *TicketController) AddComment(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	comment, err := c.ticketService.AddComment(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromComment(comment),
		Timestamp: time.Now(),
	})
}

// ListComments lists a ticket's comments
// @Summary List ticket comments
// @Description Lists comments on a ticket. Internal comments are visible to staff only.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ticket ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments"
// @Failure 400 {object} dto.ErrorResponse "Invalid ticket ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Ticket not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tickets/{id}/comments [get]
func (c *TicketController) ListComments(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	comments, err := c.ticketService.ListComments(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, dto.FromComment(comment))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}
