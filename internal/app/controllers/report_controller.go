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

// ReportController handles monthly report endpoints
type ReportController struct {
	reportService *services.ReportService
	fileService   *services.FileService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, fileService *services.FileService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		fileService:   fileService,
		logger:        logger,
	}
}

// Submit files a monthly report
// @Summary Submit a monthly report
// @Description Submits a progress report for a month of an active internship. A report sent back for revision is resubmitted in place.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitReportRequest true "Report"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResponse} "Report submitted"
// @Failure 400 {object} dto.ErrorResponse "Period outside the internship window"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Report for this month already submitted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [post]
func (c *ReportController) Submit(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.SubmitReportRequest
	if !bindJSON(ctx, &req) {
		return
	}

	report, err := c.reportService.Submit(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromReport(report),
		Timestamp: time.Now(),
	})
}

// Review records a mentor's review of a report
// @Summary Review a report
// @Description Approves a report or sends it back for revision. The assigned mentor or the principal only; revision requires feedback.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body dto.ReviewReportRequest true "Review"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse} "Review recorded"
// @Failure 400 {object} dto.ErrorResponse "Missing feedback"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 409 {object} dto.ErrorResponse "Report already reviewed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/review [post]
func (c *ReportController) Review(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReviewReportRequest
	if !bindJSON(ctx, &req) {
		return
	}

	report, err := c.reportService.Review(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromReport(report),
		Timestamp: time.Now(),
	})
}

// ListByApplication lists the reports of an application
// @Summary List reports of an application
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ReportResponse} "Reports"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/reports [get]
func (c *ReportController) ListByApplication(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reports, err := c.reportService.ListByApplication(ctx, actor, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		items = append(items, dto.FromReport(report))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// CycleStatus reports expected versus submitted reports
// @Summary Report cycle status
// @Description Returns how many monthly reports the internship expects so far and how many were submitted and approved
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.CycleStatusResponse} "Cycle status"
// @Failure 400 {object} dto.ErrorResponse "Invalid application ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applications/{id}/reports/status [get]
func (c *ReportController) CycleStatus(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	status, err := c.reportService.CycleStatus(ctx, actor, applicationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      status,
		Timestamp: time.Now(),
	})
}

// UploadAttachment attaches a document to a report
// @Summary Attach a file to a report
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param file formData file true "Attachment file"
// @Success 201 {object} dto.APIResponse{data=models.File} "Attachment stored"
// @Failure 400 {object} dto.ErrorResponse "No file or file too large"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Report not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/{id}/attachments [post]
func (c *ReportController) UploadAttachment(ctx *gin.Context) {
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

	file, err := c.fileService.UploadReportAttachment(ctx, actor, id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      file,
		Timestamp: time.Now(),
	})
}
