// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/app/services"
	"github.com/tejasnv/internhub/internal/middleware"
)

// Controllers holds every HTTP controller of the application
type Controllers struct {
	Auth         *AuthController
	Institution  *InstitutionController
	Student      *StudentController
	Application  *ApplicationController
	Mentor       *MentorController
	Report       *ReportController
	Visit        *VisitController
	Ticket       *TicketController
	Grievance    *GrievanceController
	Notification *NotificationController
	Import       *ImportController
	Stats        *StatsController
}

// NewControllers wires the controllers to their services
func NewControllers(svc *services.Services, logger zerolog.Logger) *Controllers {
	return &Controllers{
		Auth:         NewAuthController(svc.Auth, svc.File, logger),
		Institution:  NewInstitutionController(svc.Institution, logger),
		Student:      NewStudentController(svc.Student, logger),
		Application:  NewApplicationController(svc.Application, svc.File, logger),
		Mentor:       NewMentorController(svc.Mentor, logger),
		Report:       NewReportController(svc.Report, svc.File, logger),
		Visit:        NewVisitController(svc.Visit, logger),
		Ticket:       NewTicketController(svc.Ticket, logger),
		Grievance:    NewGrievanceController(svc.Grievance, logger),
		Notification: NewNotificationController(svc.Notification, logger),
		Import:       NewImportController(svc.BulkImport, logger),
		Stats:        NewStatsController(svc.Stats, logger),
	}
}

// mustActor returns the authenticated caller or aborts with 401. Routes
// behind JWTAuth always have one; the nil path covers misconfiguration.
func mustActor(ctx *gin.Context) (auth.Actor, bool) {
	actor, ok := middleware.GetActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return actor, ok
}

// parseIDParam reads a numeric path parameter or writes a 400
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body or writes a 400 with field details
func bindJSON(ctx *gin.Context, target interface{}) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
