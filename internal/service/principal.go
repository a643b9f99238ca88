package service

import "blogapi/internal/model"

// Principal is the caller's identity as seen by the services. The auth
// middleware builds it; services never look at tokens or sessions.
type Principal struct {
	UserID      string
	Username    string
	IsAuth      bool
	State       string
	Permissions model.PermissionSet
}

// Guest is the unauthenticated principal with the fixed minimal
// capability set.
func Guest() Principal {
	return Principal{
		IsAuth:      false,
		Permissions: model.GuestPermissions(),
	}
}

// NewPrincipal builds an authenticated principal from a user row.
func NewPrincipal(user *model.User) Principal {
	return Principal{
		UserID:      user.ID,
		Username:    user.Username,
		IsAuth:      true,
		State:       user.State,
		Permissions: model.PermissionsForRole(user.Role),
	}
}
