package service

import (
	"testing"

	"blogapi/internal/exception"
	"blogapi/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestEnsureCanGetArticle(t *testing.T) {
	access := NewAccessService()
	owner := activeUser("owner")
	other := activeUser("other")

	tests := []struct {
		name         string
		principal    Principal
		authorID     string
		articleState string
		want         error
	}{
		{"guest reads published", Guest(), "owner", model.ArticleStatePublished, nil},
		{"guest denied draft", Guest(), "owner", model.ArticleStateDraft, exception.ErrAccessDenied},
		{"guest denied archived", Guest(), "owner", model.ArticleStateArchived, exception.ErrAccessDenied},
		{"owner reads own draft", owner, "owner", model.ArticleStateDraft, nil},
		{"other user denied draft", other, "owner", model.ArticleStateDraft, exception.ErrAccessDenied},
		{"other user reads published", other, "owner", model.ArticleStatePublished, nil},
		{"moderator denied foreign draft", activeModerator("mod"), "owner", model.ArticleStateDraft, exception.ErrAccessDenied},
		{"admin reads foreign draft", activeAdmin("adm"), "owner", model.ArticleStateDraft, nil},
		{"blocked owner denied own draft", blockedUser("owner"), "owner", model.ArticleStateDraft, exception.ErrAccessDenied},
		{"blocked user denied published", blockedUser("b"), "owner", model.ArticleStatePublished, exception.ErrAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := access.EnsureCanGetArticle(tt.principal, tt.authorID, tt.articleState)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestEnsureCanUpdateArticleOwnership(t *testing.T) {
	access := NewAccessService()

	assert.NoError(t, access.EnsureCanUpdateArticle(activeUser("u1"), "u1"))
	assert.Equal(t, exception.ErrAccessDenied, access.EnsureCanUpdateArticle(activeUser("u1"), "u2"))
	assert.NoError(t, access.EnsureCanUpdateArticle(activeAdmin("adm"), "u2"))
	assert.Equal(t, exception.ErrAuthentication, access.EnsureCanUpdateArticle(Guest(), "u1"))
}

func TestEnsureCanDeleteComment(t *testing.T) {
	access := NewAccessService()

	assert.NoError(t, access.EnsureCanDeleteComment(activeUser("u1"), "u1"))
	assert.Equal(t, exception.ErrAccessDenied, access.EnsureCanDeleteComment(activeUser("u1"), "u2"))
	// Moderators hold the unrestricted comment delete token
	assert.NoError(t, access.EnsureCanDeleteComment(activeModerator("mod"), "u2"))
	assert.NoError(t, access.EnsureCanDeleteComment(activeAdmin("adm"), "u2"))
	assert.Equal(t, exception.ErrAuthentication, access.EnsureCanDeleteComment(Guest(), "u1"))
}

func TestEnsureCanGetComment(t *testing.T) {
	access := NewAccessService()

	// Everyone with the published-comment token may read plain comments
	assert.NoError(t, access.EnsureCanGetPublishedComment(Guest()))
	assert.NoError(t, access.EnsureCanGetPublishedComment(activeUser("u1")))

	// The elevated read is for moderators and admins only
	assert.Equal(t, exception.ErrAccessDenied, access.EnsureCanGetComment(activeUser("u1")))
	assert.NoError(t, access.EnsureCanGetComment(activeModerator("mod")))
	assert.NoError(t, access.EnsureCanGetComment(activeAdmin("adm")))
	assert.Equal(t, exception.ErrAuthentication, access.EnsureCanGetComment(Guest()))
}

func TestEnsureCanCreateAndRate(t *testing.T) {
	access := NewAccessService()

	assert.Equal(t, exception.ErrAuthentication, access.EnsureCanCreateComment(Guest()))
	assert.NoError(t, access.EnsureCanCreateComment(activeUser("u1")))
	assert.Equal(t, exception.ErrAccessDenied, access.EnsureCanCreateComment(blockedUser("u1")))

	assert.Equal(t, exception.ErrAuthentication, access.EnsureCanRateArticle(Guest()))
	assert.NoError(t, access.EnsureCanRateArticle(activeUser("u1")))
	assert.NoError(t, access.EnsureCanRateComment(activeUser("u1")))
}

func TestEnsureCanDeleteAllComments(t *testing.T) {
	access := NewAccessService()

	assert.Equal(t, exception.ErrAccessDenied, access.EnsureCanDeleteAllComments(activeUser("u1")))
	assert.NoError(t, access.EnsureCanDeleteAllComments(activeModerator("mod")))
	assert.NoError(t, access.EnsureCanDeleteAllComments(activeAdmin("adm")))
}

func TestNotificationCapabilities(t *testing.T) {
	access := NewAccessService()

	assert.NoError(t, access.EnsureCanGetSelfNotifications(activeUser("u1")))
	assert.NoError(t, access.EnsureCanDeleteSelfNotification(activeUser("u1")))
	assert.Equal(t, exception.ErrAuthentication, access.EnsureCanGetSelfNotifications(Guest()))
	assert.Equal(t, exception.ErrAccessDenied, access.EnsureCanGetSelfNotifications(blockedUser("u1")))
}

func TestGuestPermissionSet(t *testing.T) {
	guest := Guest()

	assert.False(t, guest.IsAuth)
	assert.True(t, guest.Permissions.Has(model.PermGetPublishedArticle))
	assert.True(t, guest.Permissions.Has(model.PermGetPublishedComment))
	assert.Len(t, guest.Permissions, 2)
}
