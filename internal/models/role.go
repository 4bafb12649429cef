package models

import "fmt"

// Role is a user's role within a single workspace. It is persisted as a
// lowercase string on the workspace_members table and nowhere else.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// ParseRole validates a persisted role string. A value outside the four
// variants is a data-integrity fault and is rejected, never coerced.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid workspace role: %q", s)
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// CanManageProjects reports whether the role may create, update and
// organize projects and their contents. Viewers are read-only.
func (r Role) CanManageProjects() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may invite, update and remove
// workspace members.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CanDeleteWorkspace reports whether the role may delete the workspace.
func (r Role) CanDeleteWorkspace() bool {
	return r == RoleOwner
}

// CanView reports whether the role grants read access. Membership alone is
// sufficient, so every valid role qualifies.
func (r Role) CanView() bool {
	return r.Valid()
}
