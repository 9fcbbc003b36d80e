package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/services"
	"github.com/tejasnv/internhub/internal/middleware"
)

// GrievanceController handles grievance endpoints
type GrievanceController struct {
	grievanceService *services.GrievanceService
	logger           zerolog.Logger
}

// NewGrievanceController creates a new GrievanceController
func NewGrievanceController(grievanceService *services.GrievanceService, logger zerolog.Logger) *GrievanceController {
	return &GrievanceController{
		grievanceService: grievanceService,
		logger:           logger,
	}
}

// Create files a grievance
// @Summary File a grievance
// @Description Files a grievance against the internship placement. Students only.
// @Tags grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGrievanceRequest true "Grievance details"
// @Success 201 {object} dto.APIResponse{data=dto.GrievanceResponse} "Grievance filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grievances [post]
func (c *GrievanceController) Create(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateGrievanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	grievance, err := c.grievanceService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromGrievance(grievance),
		Timestamp: time.Now(),
	})
}

// List retrieves grievances visible to the caller
// @Summary List grievances
// @Description Lists grievances. Students see their own filings, principals their institution's, the directorate all.
// @Tags grievances
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.GrievanceResponse} "Grievances"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grievances [get]
func (c *GrievanceController) List(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	grievances, err := c.grievanceService.List(ctx, actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.GrievanceResponse, 0, len(grievances))
	for _, grievance := range grievances {
		items = append(items, dto.FromGrievance(grievance))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// Get retrieves a grievance
// @Summary Get grievance by ID
// @Tags grievances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Success 200 {object} dto.APIResponse{data=dto.GrievanceResponse} "Grievance"
// @Failure 400 {object} dto.ErrorResponse "Invalid grievance ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Grievance not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grievances/{id} [get]
func (c *GrievanceController) Get(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	grievance, err := c.grievanceService.Get(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromGrievance(grievance),
		Timestamp: time.Now(),
	})
}

// MarkUnderReview marks a grievance as being reviewed
// @Summary Take a grievance under review
// @Description Moves a filed grievance to UNDER_REVIEW. Principal of the institution or directorate.
// @Tags grievances
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Success 200 {object} dto.APIResponse{data=dto.GrievanceResponse} "Grievance under review"
// @Failure 400 {object} dto.ErrorResponse "Invalid grievance ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Grievance not found"
// @Failure 409 {object} dto.ErrorResponse "Grievance is not open"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grievances/{id}/review [post]
func (c *GrievanceController) MarkUnderReview(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	grievance, err := c.grievanceService.MarkUnderReview(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromGrievance(grievance),
		Timestamp: time.Now(),
	})
}

// Resolve closes a grievance with a resolution note
// @Summary Resolve a grievance
// @Description Records a resolution and closes the grievance. Principal of the institution or directorate.
// @Tags grievances
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grievance ID"
// @Param request body dto.ResolveGrievanceRequest true "Resolution"
// @Success 200 {object} dto.APIResponse{data=dto.GrievanceResponse} "Grievance resolved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Grievance not found"
// @Failure 409 {object} dto.ErrorResponse "Grievance already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grievances/{id}/resolve [post]
func (c *GrievanceController) Resolve(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ResolveGrievanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	grievance, err := c.grievanceService.Resolve(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromGrievance(grievance),
		Timestamp: time.Now(),
	})
}
