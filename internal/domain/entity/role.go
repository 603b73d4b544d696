// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can have in the system.
// Roles form a closed enum; free-form role strings are never compared
// outside this file.
type Role string

const (
	// RoleSuperadmin is the singleton privileged role. It holds every
	// capability unconditionally.
	RoleSuperadmin Role = "superadmin"
	// RoleAdmin indicates an administrator.
	RoleAdmin Role = "admin"
	// RoleModerator indicates a content moderator.
	RoleModerator Role = "moderator"
	// RoleUser indicates a regular user.
	RoleUser Role = "user"
)

// Capability is a single permission token granted by a role.
type Capability string

const (
	CapManageUsers      Capability = "manage_users"
	CapViewAnalytics    Capability = "view_analytics"
	CapManageContent    Capability = "manage_content"
	CapSystemSettings   Capability = "system_settings"
	CapSuspendUsers     Capability = "suspend_users"
	CapViewOwnData      Capability = "view_own_data"
	CapManageOwnProfile Capability = "manage_own_profile"
)

// rolePermissions is the static role -> capability table. Superadmin is
// deliberately absent: it is a wildcard handled in HasPermission.
var rolePermissions = map[Role][]Capability{
	RoleAdmin:     {CapManageUsers, CapViewAnalytics, CapManageContent, CapSystemSettings},
	RoleModerator: {CapManageContent, CapViewAnalytics},
	RoleUser:      {CapViewOwnData, CapManageOwnProfile},
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleModerator, RoleUser:
		return true
	default:
		return false
	}
}

// HasPermission reports whether the role grants the given capability.
// Pure function, no I/O; consulted before every privileged mutation.
func (r Role) HasPermission(capability Capability) bool {
	if r == RoleSuperadmin {
		return true
	}

	return slices.Contains(rolePermissions[r], capability)
}

// Permissions returns the capability tokens granted to the role. The
// returned slice is a copy; mutating it does not alter the table.
func (r Role) Permissions() []Capability {
	if r == RoleSuperadmin {
		all := make([]Capability, 0, 8)
		seen := map[Capability]struct{}{}
		for _, caps := range rolePermissions {
			for _, c := range caps {
				if _, ok := seen[c]; !ok {
					seen[c] = struct{}{}
					all = append(all, c)
				}
			}
		}
		all = append(all, CapSuspendUsers)

		return all
	}

	return slices.Clone(rolePermissions[r])
}

// RoleFromString converts a string to a Role, reporting validity.
func RoleFromString(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
