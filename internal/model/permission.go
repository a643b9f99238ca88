package model

// Permission is an opaque capability token. A principal holds a set of them;
// the access service decides on actions by set membership only.
type Permission string

const (
	PermCreateArticle       Permission = "CREATE_ARTICLE"
	PermGetArticle          Permission = "GET_ARTICLE"
	PermGetSelfArticle      Permission = "GET_SELF_ARTICLE"
	PermGetPublishedArticle Permission = "GET_PUBLISHED_ARTICLE"
	PermUpdateArticle       Permission = "UPDATE_ARTICLE"
	PermUpdateSelfArticle   Permission = "UPDATE_SELF_ARTICLE"
	PermDeleteArticle       Permission = "DELETE_ARTICLE"
	PermDeleteSelfArticle   Permission = "DELETE_SELF_ARTICLE"
	PermRateArticle         Permission = "RATE_ARTICLE"

	PermCreateComment       Permission = "CREATE_COMMENT"
	PermGetComment          Permission = "GET_COMMENT"
	PermGetPublishedComment Permission = "GET_PUBLISHED_COMMENT"
	PermUpdateComment       Permission = "UPDATE_COMMENT"
	PermUpdateSelfComment   Permission = "UPDATE_SELF_COMMENT"
	PermDeleteComment       Permission = "DELETE_COMMENT"
	PermDeleteSelfComment   Permission = "DELETE_SELF_COMMENT"
	PermRateComment         Permission = "RATE_COMMENT"

	PermGetSelfNotifications   Permission = "GET_SELF_NOTIFICATIONS"
	PermDeleteSelfNotification Permission = "DELETE_SELF_NOTIFICATION"
)

// PermissionSet is the held-capability set of a principal.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// GuestPermissions is the fixed minimal set held by unauthenticated
// principals.
func GuestPermissions() PermissionSet {
	return NewPermissionSet(
		PermGetPublishedArticle,
		PermGetPublishedComment,
	)
}

// PermissionsForRole maps a user role to its capability set.
func PermissionsForRole(role string) PermissionSet {
	switch role {
	case RoleAdmin:
		return NewPermissionSet(
			PermCreateArticle,
			PermGetArticle,
			PermGetSelfArticle,
			PermGetPublishedArticle,
			PermUpdateArticle,
			PermUpdateSelfArticle,
			PermDeleteArticle,
			PermDeleteSelfArticle,
			PermRateArticle,
			PermCreateComment,
			PermGetComment,
			PermGetPublishedComment,
			PermUpdateComment,
			PermUpdateSelfComment,
			PermDeleteComment,
			PermDeleteSelfComment,
			PermRateComment,
			PermGetSelfNotifications,
			PermDeleteSelfNotification,
		)
	case RoleModerator:
		return NewPermissionSet(
			PermCreateArticle,
			PermGetSelfArticle,
			PermGetPublishedArticle,
			PermUpdateSelfArticle,
			PermDeleteSelfArticle,
			PermRateArticle,
			PermCreateComment,
			PermGetComment,
			PermGetPublishedComment,
			PermUpdateSelfComment,
			PermDeleteComment,
			PermDeleteSelfComment,
			PermRateComment,
			PermGetSelfNotifications,
			PermDeleteSelfNotification,
		)
	case RoleUser:
		return NewPermissionSet(
			PermCreateArticle,
			PermGetSelfArticle,
			PermGetPublishedArticle,
			PermUpdateSelfArticle,
			PermDeleteSelfArticle,
			PermRateArticle,
			PermCreateComment,
			PermGetPublishedComment,
			PermUpdateSelfComment,
			PermDeleteSelfComment,
			PermRateComment,
			PermGetSelfNotifications,
			PermDeleteSelfNotification,
		)
	default:
		return GuestPermissions()
	}
}
