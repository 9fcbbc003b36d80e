package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/services"
	"github.com/tejasnv/internhub/internal/middleware"
)

// ImportController handles bulk student import endpoints
type ImportController struct {
	importService *services.BulkImportService
	logger        zerolog.Logger
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.BulkImportService, logger zerolog.Logger) *ImportController {
	return &ImportController{
		importService: importService,
		logger:        logger,
	}
}

// Upload accepts a CSV file and queues a student import job
// @Summary Import students from CSV
// @Description Uploads a CSV of students and queues it for background processing. Principals import into their own institution; the directorate must name one.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file (email,first_name,last_name,enrollment_no,program,semester)"
// @Param institutionId formData int false "Target institution (directorate only)"
// @Success 202 {object} dto.APIResponse{data=dto.ImportJobResponse} "Import queued"
// @Failure 400 {object} dto.ErrorResponse "Invalid file or parameters"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Import queue is full"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/import [post]
func (c *ImportController) Upload(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A CSV file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var institutionID *int64
	if raw := ctx.PostForm("institutionId"); raw != "" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institutionId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		institutionID = &id
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded import file")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to read uploaded file")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	job, err := c.importService.CreateJob(ctx, actor, institutionID, fileHeader.Filename, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.APIResponse{
		Data:      dto.FromImportJob(job),
		Timestamp: time.Now(),
	})
}

// GetJob retrieves an import job with its rejected rows
// @Summary Get import job
// @Description Returns an import job's progress and the per-row errors recorded so far.
// @Tags imports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Import job ID"
// @Success 200 {object} dto.APIResponse{data=dto.ImportJobDetailResponse} "Import job"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Import job not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /imports/{id} [get]
func (c *ImportController) GetJob(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	job, rowErrors, err := c.importService.GetJob(ctx, actor, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	detail := dto.ImportJobDetailResponse{
		Job:       dto.FromImportJob(job),
		RowErrors: make([]dto.ImportRowErrorResponse, 0, len(rowErrors)),
	}
	for _, rowError := range rowErrors {
		detail.RowErrors = append(detail.RowErrors, dto.FromImportRowError(rowError))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      detail,
		Timestamp: time.Now(),
	})
}

// ListJobs lists import jobs visible to the caller
// @Summary List import jobs
// @Description Lists import jobs, newest first. Principals see their institution's jobs; the directorate may filter by institution.
// @Tags imports
// @Produce json
// @Security BearerAuth
// @Param institutionId query int false "Filter by institution (directorate only)"
// @Success 200 {object} dto.APIResponse{data=[]dto.ImportJobResponse} "Import jobs"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /imports [get]
func (c *ImportController) ListJobs(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var institutionID *int64
	if raw := ctx.Query("institutionId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institutionId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		institutionID = &id
	}

	jobs, err := c.importService.ListJobs(ctx, actor, institutionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ImportJobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, dto.FromImportJob(job))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}
