package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent     RoleType = "STUDENT"
	RoleFaculty     RoleType = "FACULTY"
	RolePrincipal   RoleType = "PRINCIPAL"
	RoleIndustry    RoleType = "INDUSTRY"
	RoleDirectorate RoleType = "DIRECTORATE"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r RoleType) bool {
	switch r {
	case RoleStudent, RoleFaculty, RolePrincipal, RoleIndustry, RoleDirectorate:
		return true
	}
	return false
}

// InstitutionScoped reports whether the role belongs to a single
// institution. DIRECTORATE users operate state-wide and carry no
// institution.
func (r RoleType) InstitutionScoped() bool {
	return r != RoleDirectorate
}
