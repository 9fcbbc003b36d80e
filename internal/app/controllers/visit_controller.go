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

// VisitController handles faculty visit log endpoints
type VisitController struct {
	visitService *services.VisitService
	logger       zerolog.Logger
}

// NewVisitController creates a new VisitController
func NewVisitController(visitService *services.VisitService, logger zerolog.Logger) *VisitController {
	return &VisitController{
		visitService: visitService,
		logger:       logger,
	}
}

// Create records a site visit
// @Summary Log a site visit
// @Description Records a visit to a mentee's internship site. The assigned mentor only; the date must fall inside the internship window.
// @Tags visits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateVisitRequest true "Visit details"
// @Success 201 {object} dto.APIResponse{data=dto.VisitResponse} "Visit logged"
// @Failure 400 {object} dto.ErrorResponse "Date outside the internship window"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Internship not active"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /visits [post]
func (c *VisitController) Create(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateVisitRequest
	if !bindJSON(ctx, &req) {
		return
	}

	visit, err := c.visitService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromVisit(visit),
		Timestamp: time.Now(),
	})
}

// ListByApplication lists the visits logged for an application
// @Summary List visits of an application
// @Tags visits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.VisitResponse} "Visits"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/visits [get]
func (c *VisitController) ListByApplication(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	visits, err := c.visitService.ListByApplication(ctx, actor, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.VisitResponse, 0, len(visits))
	for _, visit := range visits {
		items = append(items, dto.FromVisit(visit))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// ListOwn lists the caller's own visit logs
// @Summary List own visits
// @Description Lists the visits logged by the authenticated faculty member, newest first
// @Tags visits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.VisitResponse} "Visits"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /visits [get]
func (c *VisitController) ListOwn(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	visits, err := c.visitService.ListOwn(ctx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.VisitResponse, 0, len(visits))
	for _, visit := range visits {
		items = append(items, dto.FromVisit(visit))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// VisitStatus reports expected versus logged visits
// @Summary Visit cycle status
// @Description Returns how many site visits the internship expects so far and how many were logged
// @Tags visits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.CycleStatusResponse} "Visit status"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/visits/status [get]
func (c *VisitController) VisitStatus(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, err := c.visitService.VisitStatus(ctx, actor, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}
