package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleHasPermission(t *testing.T) {
	tests := []struct {
		role    Role
		granted []Capability
		denied  []Capability
	}{
		{
			role: RoleAdmin,
			granted: []Capability{
				CapManageUsers, CapViewAnalytics, CapManageContent, CapSystemSettings,
			},
			denied: []Capability{CapSuspendUsers, CapViewOwnData},
		},
		{
			role:    RoleModerator,
			granted: []Capability{CapManageContent, CapViewAnalytics},
			denied:  []Capability{CapManageUsers, CapSuspendUsers, CapSystemSettings},
		},
		{
			role:    RoleUser,
			granted: []Capability{CapViewOwnData, CapManageOwnProfile},
			denied:  []Capability{CapManageUsers, CapManageContent, CapSuspendUsers},
		},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			for _, capability := range tt.granted {
				assert.True(t, tt.role.HasPermission(capability), string(capability))
			}
			for _, capability := range tt.denied {
				assert.False(t, tt.role.HasPermission(capability), string(capability))
			}
		})
	}
}

func TestSuperadminWildcard(t *testing.T) {
	for _, capability := range []Capability{
		CapManageUsers, CapViewAnalytics, CapManageContent, CapSystemSettings,
		CapSuspendUsers, CapViewOwnData, CapManageOwnProfile,
		Capability("anything_future"),
	} {
		assert.True(t, RoleSuperadmin.HasPermission(capability), string(capability))
	}
}

func TestRoleValidity(t *testing.T) {
	for _, role := range []Role{RoleSuperadmin, RoleAdmin, RoleModerator, RoleUser} {
		assert.True(t, role.IsValid(), role.String())
	}

	invalid, ok := RoleFromString("root")
	assert.False(t, ok)
	assert.False(t, invalid.IsValid())

	valid, ok := RoleFromString("moderator")
	assert.True(t, ok)
	assert.Equal(t, RoleModerator, valid)
}

func TestRolePermissionsCopy(t *testing.T) {
	perms := RoleUser.Permissions()
	assert.ElementsMatch(t, []Capability{CapViewOwnData, CapManageOwnProfile}, perms)

	// Mutating the returned slice must not poison the table.
	perms[0] = CapSuspendUsers
	assert.False(t, RoleUser.HasPermission(CapSuspendUsers))
}
