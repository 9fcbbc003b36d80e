package auth

import (
	"github.com/tejasnv/internhub/internal/app/models"
	"github.com/tejasnv/internhub/internal/pkg/apperrors"
)

// Actor is the authenticated caller as seen by the services. It is
// built from the JWT claims by the auth middleware.
type Actor struct {
	UserID        int64
	Role          models.RoleType
	InstitutionID *int64
}

// IsDirectorate reports whether the actor works for the state
// directorate.
func (a Actor) IsDirectorate() bool {
	return a.Role == models.RoleDirectorate
}

// SameInstitution reports whether the actor belongs to the given
// institution. Directorate staff have no institution and never match.
func (a Actor) SameInstitution(institutionID int64) bool {
	return a.InstitutionID != nil && *a.InstitutionID == institutionID
}

// CanAccessInstitution checks tenant scoping: directorate staff see
// every institution, everyone else only their own.
func (a Actor) CanAccessInstitution(institutionID int64) error {
	if a.IsDirectorate() {
		return nil
	}
	if !a.SameInstitution(institutionID) {
		return apperrors.NewForbiddenError("resource belongs to another institution")
	}
	return nil
}

// RequireRole checks that the actor holds one of the given roles
func (a Actor) RequireRole(roles ...models.RoleType) error {
	for _, role := range roles {
		if a.Role == role {
			return nil
		}
	}
	return apperrors.NewForbiddenError("insufficient role for this action")
}

// ScopeInstitution returns the institution filter for list endpoints:
// nil (no filter) for directorate staff, the actor's own institution
// otherwise.
func (a Actor) ScopeInstitution() *int64 {
	if a.IsDirectorate() {
		return nil
	}
	return a.InstitutionID
}

// IsStaff reports whether the actor may see internal ticket comments
func (a Actor) IsStaff() bool {
	switch a.Role {
	case models.RoleFaculty, models.RolePrincipal, models.RoleDirectorate:
		return true
	}
	return false
}
