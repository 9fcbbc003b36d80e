package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
	"github.com/tejasnv/internhub/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// funnel every service error through here so the error surface stays
// uniform.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrInstitutionNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrMentorAssignmentNotFound),
		errors.Is(err, apperrors.ErrReportNotFound),
		errors.Is(err, apperrors.ErrVisitNotFound),
		errors.Is(err, apperrors.ErrTicketNotFound),
		errors.Is(err, apperrors.ErrGrievanceNotFound),
		errors.Is(err, apperrors.ErrImportJobNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)

	// 409 duplicates
	case errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrInstitutionAlreadyExists),
		errors.Is(err, apperrors.ErrEnrollmentNoExists),
		errors.Is(err, apperrors.ErrMentorAlreadyAssigned),
		errors.Is(err, apperrors.ErrReportAlreadySubmitted):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)

	// 409 lifecycle violations
	case errors.Is(err, apperrors.ErrApplicationNotPending),
		errors.Is(err, apperrors.ErrApplicationNotActive),
		errors.Is(err, apperrors.ErrInvalidPhaseChange),
		errors.Is(err, apperrors.ErrInvalidTicketChange),
		errors.Is(err, apperrors.ErrTicketAssigneeRequired),
		errors.Is(err, apperrors.ErrInvalidGrievanceChange):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidTransition, err)

	case errors.Is(err, apperrors.ErrInstitutionHasRelations),
		errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceInvalid, err)

	// 400
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidEnrollmentNumber),
		errors.Is(err, apperrors.ErrDecisionReasonMissing),
		errors.Is(err, apperrors.ErrReportOutsideWindow),
		errors.Is(err, apperrors.ErrVisitOutsideWindow),
		errors.Is(err, apperrors.ErrImportFileInvalid):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, err)

	// 403
	case errors.Is(err, apperrors.ErrAccountDisabled),
		errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrNotAMentor):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		detail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	}
}

// respond writes the error with its message. CustomError messages are
// already user-facing; sentinel errors read well enough as-is.
func respond(c *gin.Context, status int, code dto.ErrorCode, err error) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, errorMessage(err))))
}

func errorMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return err.Error()
}
