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

// ApplicationController handles internship application endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
	fileService        *services.FileService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService *services.ApplicationService, fileService *services.FileService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		fileService:        fileService,
		logger:             logger,
	}
}

// Create submits a new internship application
// @Summary Apply for an internship
// @Description Creates an internship application for the authenticated student. It starts in PENDING status.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateApplicationRequest true "Application details"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or dates"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [post]
func (c *ApplicationController) Create(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateApplicationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := c.applicationService.Create(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromApplication(application),
		Timestamp: time.Now(),
	})
}

// List retrieves a filtered page of applications
// @Summary List applications
// @Description Lists applications. Students see their own, institution staff their institution's, the directorate everything.
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED)
// @Param phase query string false "Filter by phase" Enums(NOT_STARTED, ACTIVE, COMPLETED, TERMINATED)
// @Param studentId query int false "Filter by student"
// @Param institutionId query int false "Filter by institution (directorate only)"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Applications"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var filter repositories.ApplicationFilter
	if status := ctx.Query("status"); status != "" {
		s := models.ApplicationStatus(status)
		filter.Status = &s
	}
	if phase := ctx.Query("phase"); phase != "" {
		p := models.InternshipPhase(phase)
		filter.Phase = &p
	}
	if studentIDStr := ctx.Query("studentId"); studentIDStr != "" {
		studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid studentId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.StudentID = &studentID
	}
	if institutionIDStr := ctx.Query("institutionId"); institutionIDStr != "" {
		institutionID, err := strconv.ParseInt(institutionIDStr, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institutionId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.InstitutionID = &institutionID
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	applications, total, err := c.applicationService.List(ctx, actor, filter, int(offset), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		items = append(items, dto.FromApplication(application))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewPaginatedResponse(items, helpers.NewPaginationInfo(total, page, size)),
		Timestamp: time.Now(),
	})
}

// Get retrieves an application
// @Summary Get application by ID
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id} [get]
func (c *ApplicationController) Get(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.applicationService.Get(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromApplication(application),
		Timestamp: time.Now(),
	})
}

// Update edits a pending application
// @Summary Update an application
// @Description Updates an application. Only the owning student may update, and only while it is PENDING.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.UpdateApplicationRequest true "Application details"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application no longer pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id} [put]
func (c *ApplicationController) Update(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateApplicationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := c.applicationService.Update(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromApplication(application),
		Timestamp: time.Now(),
	})
}

// Decide approves or rejects a pending application
// @Summary Decide on an application
// @Description Approves or rejects a pending application. Principals of the student's institution only; rejection requires a reason.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.DecisionRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Decision recorded"
// @Failure 400 {object} dto.ErrorResponse "Missing rejection reason"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Application no longer pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/decision [post]
func (c *ApplicationController) Decide(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := c.applicationService.Decide(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromApplication(application),
		Timestamp: time.Now(),
	})
}

// ChangePhase moves an approved application through its internship
// lifecycle
// @Summary Change internship phase
// @Description Transitions an approved application between internship phases. Termination requires a reason.
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.PhaseChangeRequest true "Target phase"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationResponse} "Phase changed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid phase transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/phase [post]
func (c *ApplicationController) ChangePhase(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.PhaseChangeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	application, err := c.applicationService.ChangePhase(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromApplication(application),
		Timestamp: time.Now(),
	})
}

// UploadDocument attaches an offer letter to an application
// @Summary Attach a document
// @Description Stores a document, such as the offer letter, against an application
// @Tags applications
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=models.File} "Document stored"
// @Failure 400 {object} dto.ErrorResponse "No file or file too large"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/documents [post]
func (c *ApplicationController) UploadDocument(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "No file provided")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := c.fileService.UploadOfferLetter(ctx, actor, id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      file,
		Timestamp: time.Now(),
	})
}

// ListDocuments lists an application's attached documents
// @Summary List attached documents
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]models.File} "Documents"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/documents [get]
func (c *ApplicationController) ListDocuments(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	files, err := c.fileService.ListForApplication(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      files,
		Timestamp: time.Now(),
	})
}
