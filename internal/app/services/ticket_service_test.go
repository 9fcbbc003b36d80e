package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tejasnv/internhub/internal/app/auth"
	"github.com/tejasnv/internhub/internal/app/models"
)

func TestTicketAuthorize(t *testing.T) {
	instA := int64(1)
	instB := int64(2)
	svc := &TicketService{}

	ticket := &models.SupportTicket{ID: 10, InstitutionID: &instA, CreatorID: 100}
	directorateTicket := &models.SupportTicket{ID: 11, CreatorID: 200}

	tests := []struct {
		name    string
		actor   auth.Actor
		ticket  *models.SupportTicket
		wantErr bool
	}{
		{
			name:   "creator sees own ticket",
			actor:  auth.Actor{UserID: 100, Role: models.RoleStudent, InstitutionID: &instA},
			ticket: ticket,
		},
		{
			name:   "directorate sees any ticket",
			actor:  auth.Actor{UserID: 5, Role: models.RoleDirectorate},
			ticket: ticket,
		},
		{
			name:   "principal of the same institution",
			actor:  auth.Actor{UserID: 6, Role: models.RolePrincipal, InstitutionID: &instA},
			ticket: ticket,
		},
		{
			name:    "principal of another institution",
			actor:   auth.Actor{UserID: 7, Role: models.RolePrincipal, InstitutionID: &instB},
			ticket:  ticket,
			wantErr: true,
		},
		{
			name:    "faculty of another institution",
			actor:   auth.Actor{UserID: 8, Role: models.RoleFaculty, InstitutionID: &instB},
			ticket:  ticket,
			wantErr: true,
		},
		{
			name:    "another student of the same institution",
			actor:   auth.Actor{UserID: 101, Role: models.RoleStudent, InstitutionID: &instA},
			ticket:  ticket,
			wantErr: true,
		},
		{
			name:    "principal cannot touch a directorate ticket",
			actor:   auth.Actor{UserID: 6, Role: models.RolePrincipal, InstitutionID: &instA},
			ticket:  directorateTicket,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.authorize(tt.actor, tt.ticket)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
