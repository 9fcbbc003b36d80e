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

// InstitutionController handles the institution registry endpoints
type InstitutionController struct {
	institutionService *services.InstitutionService
	logger             zerolog.Logger
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(institutionService *services.InstitutionService, logger zerolog.Logger) *InstitutionController {
	return &InstitutionController{
		institutionService: institutionService,
		logger:             logger,
	}
}

// Create registers a new institution
// @Summary Register an institution
// @Description Adds an institution to the state registry. Directorate only.
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInstitutionRequest true "Institution information"
// @Success 201 {object} dto.APIResponse{data=models.Institution} "Institution created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Institution already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [post]
func (c *InstitutionController) Create(ctx *gin.Context) {
	var req dto.CreateInstitutionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	institution, err := c.institutionService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      institution,
		Timestamp: time.Now(),
	})
}

// GetByID retrieves an institution
// @Summary Get institution by ID
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [get]
func (c *InstitutionController) GetByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	institution, err := c.institutionService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      institution,
		Timestamp: time.Now(),
	})
}

// GetAll lists the institutions
// @Summary List institutions
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Institution} "Institutions"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [get]
func (c *InstitutionController) GetAll(ctx *gin.Context) {
	institutions, err := c.institutionService.GetAll(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      institutions,
		Timestamp: time.Now(),
	})
}

// Update updates an institution's registry entry
// @Summary Update an institution
// @Description Updates an institution's registry entry. Directorate only.
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Param request body dto.UpdateInstitutionRequest true "Institution information"
// @Success 200 {object} dto.APIResponse{data=models.Institution} "Institution updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Name or code already in use"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [put]
func (c *InstitutionController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateInstitutionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	institution, err := c.institutionService.Update(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      institution,
		Timestamp: time.Now(),
	})
}

// Delete removes an institution
// @Summary Delete an institution
// @Description Removes an institution with no enrolled students. Directorate only.
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Institution deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid institution ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Institution still has students"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [delete]
func (c *InstitutionController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.institutionService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Institution deleted"},
		Timestamp: time.Now(),
	})
}
