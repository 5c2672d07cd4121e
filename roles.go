package auth

// Role is a user's role as reported by the backend token claims
type Role string

const (
	// RoleAdmin is the platform administrator (super-role, bypasses guards)
	RoleAdmin Role = "ADMIN"
	// RoleCompanyAdmin administers a company account
	RoleCompanyAdmin Role = "COMPANY_ADMIN"
	// RoleCompanyUser is a contributor inside a company account
	RoleCompanyUser Role = "COMPANY_USER"
	// RoleUser is a regular marketplace user
	RoleUser Role = "REGULAR_USER"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCompanyAdmin, RoleCompanyUser, RoleUser:
		return true
	default:
		return false
	}
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleCompanyAdmin,
		RoleCompanyUser,
		RoleUser,
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}

// FilterRoles keeps only recognized roles, preserving input order.
// Unknown strings are dropped, never surfaced as errors; the closed set is
// enforced here so guard logic never sees ambiguous values.
func FilterRoles(raw []string) []Role {
	var roles []Role
	for _, r := range raw {
		if role, ok := ParseRole(r); ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// ContainsRole reports whether roles includes the given role
func ContainsRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// IntersectsRoles reports whether roles shares at least one entry with required
func IntersectsRoles(roles, required []Role) bool {
	for _, r := range required {
		if ContainsRole(roles, r) {
			return true
		}
	}
	return false
}
