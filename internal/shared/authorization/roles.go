package authorization

// Role is the permission level carried in the access token's `permissions`
// claim. RoleNone marks an account without a linked user profile.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleNone  Role = "none"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser || r == RoleNone
}

// ParseRole maps an arbitrary claim string to a Role, defaulting to
// RoleNone for anything unknown.
func ParseRole(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}
	return RoleNone
}
