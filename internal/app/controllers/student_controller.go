package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/services"
	"github.com/tejasnv/internhub/internal/middleware"
	"github.com/tejasnv/internhub/internal/pkg/helpers"
)

// StudentController handles student profile endpoints
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// List retrieves a page of an institution's students
// @Summary List students
// @Description Lists the students of an institution. Staff of the institution only; the directorate may query any institution via institutionId.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param institutionId query int false "Institution ID (defaults to the caller's institution)"
// @Param search query string false "Search term matched against names and enrollment numbers"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	institutionID, ok := resolveInstitutionID(ctx, actor)
	if !ok {
		return
	}

	search := strings.TrimSpace(ctx.Query("search"))
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	students, total, err := c.studentService.ListByInstitution(ctx, actor, institutionID, search, int(offset), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.FromStudent(student))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.NewPaginatedResponse(items, helpers.NewPaginationInfo(total, page, size)),
		Timestamp: time.Now(),
	})
}

// GetOwn retrieves the caller's student profile
// @Summary Get own student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student profile"
// @Failure 404 {object} dto.ErrorResponse "No student profile"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/me [get]
func (c *StudentController) GetOwn(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetOwn(ctx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// GetByID retrieves a student profile
// @Summary Get student by ID
// @Description Retrieves a student. Students see only themselves, staff their own institution.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetByID(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetByID(ctx, actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// Update updates a student's program and semester
// @Summary Update a student
// @Description Updates a student's program and semester. Principals of the student's institution only.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student fields"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.Update(ctx, actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromStudent(student),
		Timestamp: time.Now(),
	})
}

// ListFaculty retrieves the faculty members of an institution
// @Summary List faculty
// @Description Lists the faculty members of an institution for mentor assignment
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param institutionId query int false "Institution ID (defaults to the caller's institution)"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Faculty members"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [get]
func (c *StudentController) ListFaculty(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	institutionID, ok := resolveInstitutionID(ctx, actor)
	if !ok {
		return
	}

	faculty, err := c.studentService.ListFaculty(ctx, actor, institutionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.UserResponse, 0, len(faculty))
	for _, member := range faculty {
		items = append(items, dto.FromUser(member))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// resolveInstitutionID picks the target institution for list endpoints:
// the institutionId query parameter when present, the caller's own
// institution otherwise. Directorate callers must pass the parameter.
func resolveInstitutionID(ctx *gin.Context, actor auth.Actor) (int64, bool) {
	if idStr := ctx.Query("institutionId"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id < 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institutionId parameter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return 0, false
		}
		return id, true
	}

	if actor.InstitutionID != nil {
		return *actor.InstitutionID, true
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "institutionId parameter is required")
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return 0, false
}
