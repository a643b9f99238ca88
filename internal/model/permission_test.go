package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuestPermissions(t *testing.T) {
	guest := GuestPermissions()

	assert.Len(t, guest, 2)
	assert.True(t, guest.Has(PermGetPublishedArticle))
	assert.True(t, guest.Has(PermGetPublishedComment))
	assert.False(t, guest.Has(PermCreateComment))
}

func TestPermissionsForRole(t *testing.T) {
	user := PermissionsForRole(RoleUser)
	moderator := PermissionsForRole(RoleModerator)
	admin := PermissionsForRole(RoleAdmin)

	// Users act on their own content only
	assert.True(t, user.Has(PermUpdateSelfComment))
	assert.False(t, user.Has(PermUpdateComment))
	assert.False(t, user.Has(PermDeleteComment))
	assert.False(t, user.Has(PermGetComment))

	// Moderators additionally see and delete any comment
	assert.True(t, moderator.Has(PermGetComment))
	assert.True(t, moderator.Has(PermDeleteComment))
	assert.False(t, moderator.Has(PermUpdateComment))
	assert.False(t, moderator.Has(PermGetArticle))

	// Admins hold every token
	assert.True(t, admin.Has(PermGetArticle))
	assert.True(t, admin.Has(PermUpdateComment))
	assert.True(t, admin.Has(PermDeleteArticle))
}

func TestPermissionsForUnknownRole(t *testing.T) {
	// Unknown roles fall back to the guest set rather than failing open
	assert.Equal(t, GuestPermissions(), PermissionsForRole("intruder"))
}
