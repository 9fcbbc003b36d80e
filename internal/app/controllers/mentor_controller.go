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

// MentorController handles mentor assignment endpoints
type MentorController struct {
	mentorService *services.MentorService
	logger        zerolog.Logger
}

// NewMentorController creates a new MentorController
func NewMentorController(mentorService *services.MentorService, logger zerolog.Logger) *MentorController {
	return &MentorController{
		mentorService: mentorService,
		logger:        logger,
	}
}

// Assign links a faculty mentor to a student for a term
// @Summary Assign a mentor
// @Description Assigns a faculty member as a student's mentor for an academic term. Principals only; one mentor per student per term.
// @Tags mentors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AssignMentorRequest true "Assignment"
// @Success 201 {object} dto.APIResponse{data=dto.MentorAssignmentResponse} "Mentor assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student or faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Student already has a mentor for the term"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors [post]
func (c *MentorController) Assign(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	var req dto.AssignMentorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	assignment, err := c.mentorService.Assign(ctx, actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.FromMentorAssignment(assignment),
		Timestamp: time.Now(),
	})
}

// Unassign removes a mentor assignment
// @Summary Remove a mentor assignment
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Assignment removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors/{id} [delete]
func (c *MentorController) Unassign(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.mentorService.Unassign(ctx, actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Mentor assignment removed"},
		Timestamp: time.Now(),
	})
}

// ListMentees lists the caller's mentees
// @Summary List own mentees
// @Description Lists the students currently mentored by the authenticated faculty member
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorAssignmentResponse} "Mentees"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /mentors/mentees [get]
func (c *MentorController) ListMentees(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}

	assignments, err := c.mentorService.ListMentees(ctx, actor.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.MentorAssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		items = append(items, dto.FromMentorAssignment(assignment))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// ListByStudent lists a student's mentor assignments
// @Summary List a student's mentors
// @Tags mentors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MentorAssignmentResponse} "Assignments"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/mentors [get]
func (c *MentorController) ListByStudent(ctx *gin.Context) {
	actor, ok := mustActor(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	assignments, err := c.mentorService.ListByStudent(ctx, actor, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.MentorAssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		items = append(items, dto.FromMentorAssignment(assignment))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}
