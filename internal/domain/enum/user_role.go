package enum

// UserRole represents the single application-level role carried by an account.
// New registrations start as Unassigned and cannot sign in until an admin or
// the manager grants a working role. At most one account may hold Manager.
type UserRole string

const (
	RoleUnassigned UserRole = "unassigned"
	RoleEmployee   UserRole = "employee"
	RoleManager    UserRole = "manager"
	RoleAdmin      UserRole = "admin"
	RoleBlocked    UserRole = "blocked"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUnassigned, RoleEmployee, RoleManager, RoleAdmin, RoleBlocked:
		return true
	}
	return false
}

// CanSignIn reports whether an account with this role may establish a session.
func (r UserRole) CanSignIn() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanManage reports whether the role may use mutating catalog, approval and
// user-administration endpoints. Employees get read-only access.
func (r UserRole) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}
