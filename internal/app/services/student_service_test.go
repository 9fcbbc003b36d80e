package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
)

func TestStudentAuthorizeUpdate(t *testing.T) {
	instA := int64(1)
	instB := int64(2)
	svc := &StudentService{}

	student := &models.Student{ID: 10, UserID: 100, InstitutionID: instA}

	tests := []struct {
		name    string
		actor   auth.Actor
		wantErr bool
	}{
		{
			name:  "student updates own profile",
			actor: auth.Actor{UserID: 100, Role: models.RoleStudent, InstitutionID: &instA},
		},
		{
			name:    "classmate cannot update",
			actor:   auth.Actor{UserID: 101, Role: models.RoleStudent, InstitutionID: &instA},
			wantErr: true,
		},
		{
			name:  "principal of the same institution",
			actor: auth.Actor{UserID: 6, Role: models.RolePrincipal, InstitutionID: &instA},
		},
		{
			name:    "principal of another institution",
			actor:   auth.Actor{UserID: 7, Role: models.RolePrincipal, InstitutionID: &instB},
			wantErr: true,
		},
		{
			name:    "faculty cannot update",
			actor:   auth.Actor{UserID: 8, Role: models.RoleFaculty, InstitutionID: &instA},
			wantErr: true,
		},
		{
			name:  "directorate updates anywhere",
			actor: auth.Actor{UserID: 5, Role: models.RoleDirectorate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.authorizeUpdate(tt.actor, student)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
