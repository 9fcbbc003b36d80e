package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tejasnv/internhub/internal/app/models"
)

func actorFor(role models.RoleType, institutionID *int64) Actor {
	return Actor{UserID: 1, Role: role, InstitutionID: institutionID}
}

func TestCanAccessInstitution(t *testing.T) {
	own := int64(3)

	directorate := actorFor(models.RoleDirectorate, nil)
	assert.NoError(t, directorate.CanAccessInstitution(3))
	assert.NoError(t, directorate.CanAccessInstitution(99))

	principal := actorFor(models.RolePrincipal, &own)
	assert.NoError(t, principal.CanAccessInstitution(3))
	assert.Error(t, principal.CanAccessInstitution(4))

	// Actor without an institution cannot reach any
	orphan := actorFor(models.RoleStudent, nil)
	assert.Error(t, orphan.CanAccessInstitution(3))
}

func TestRequireRole(t *testing.T) {
	faculty := actorFor(models.RoleFaculty, nil)
	assert.NoError(t, faculty.RequireRole(models.RoleFaculty))
	assert.NoError(t, faculty.RequireRole(models.RolePrincipal, models.RoleFaculty))
	assert.Error(t, faculty.RequireRole(models.RoleDirectorate))
	assert.Error(t, faculty.RequireRole())
}

func TestScopeInstitution(t *testing.T) {
	own := int64(5)

	assert.Nil(t, actorFor(models.RoleDirectorate, nil).ScopeInstitution())

	scope := actorFor(models.RolePrincipal, &own).ScopeInstitution()
	if assert.NotNil(t, scope) {
		assert.Equal(t, int64(5), *scope)
	}
}

func TestIsStaff(t *testing.T) {
	assert.True(t, actorFor(models.RoleFaculty, nil).IsStaff())
	assert.True(t, actorFor(models.RolePrincipal, nil).IsStaff())
	assert.True(t, actorFor(models.RoleDirectorate, nil).IsStaff())
	assert.False(t, actorFor(models.RoleStudent, nil).IsStaff())
	assert.False(t, actorFor(models.RoleIndustry, nil).IsStaff())
}
