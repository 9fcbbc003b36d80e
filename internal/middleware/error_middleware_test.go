package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejasnv/internhub/internal/app/models/dto"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(ctx, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return recorder.Code, &resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{name: "not found", err: apperrors.ErrTicketNotFound, wantStatus: http.StatusNotFound, wantCode: dto.ErrorCodeResourceNotFound},
		{name: "duplicate", err: apperrors.ErrEnrollmentNoExists, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeResourceAlreadyExists},
		{name: "lifecycle violation", err: apperrors.ErrInvalidPhaseChange, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeInvalidTransition},
		{name: "grievance wrong state", err: apperrors.ErrInvalidGrievanceChange, wantStatus: http.StatusConflict, wantCode: dto.ErrorCodeInvalidTransition},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized, wantCode: dto.ErrorCodeExpiredToken},
		{name: "forbidden", err: apperrors.NewForbiddenError("no access"), wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "not a mentor", err: apperrors.ErrNotAMentor, wantStatus: http.StatusForbidden, wantCode: dto.ErrorCodeForbidden},
		{name: "unknown errors stay internal", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantCode: dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := handleError(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.False(t, resp.Success)
		})
	}
}
