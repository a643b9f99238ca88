package service

import (
	"testing"

	"blogapi/internal/exception"
	"blogapi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationFixture(t *testing.T) (*fakeNotifs, *NotificationService) {
	t.Helper()
	notifs := newFakeNotifs()
	svc := NewNotificationService(notifs, nil, NewAccessService(), NewValidator())
	return notifs, svc
}

func TestNotifyCommentAnswerStoresNotification(t *testing.T) {
	notifs, svc := newNotificationFixture(t)

	svc.NotifyCommentAnswer("alice", "comment-1", "bob")

	list, err := svc.GetNotifications(activeUser("alice"), 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.NotificationTypeCommentAnswer, list[0].Type)
	assert.Equal(t, "alice", list[0].OwnerID)
	require.NotNil(t, list[0].ContentID)
	assert.Equal(t, "comment-1", *list[0].ContentID)
	assert.Contains(t, list[0].Content, "bob")
	assert.Len(t, notifs.items, 1)
}

func TestGetNotificationsIsSelfOnly(t *testing.T) {
	_, svc := newNotificationFixture(t)

	svc.NotifyCommentAnswer("alice", "comment-1", "bob")
	svc.NotifyCommentAnswer("carol", "comment-2", "bob")

	list, err := svc.GetNotifications(activeUser("alice"), 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	total, err := svc.GetTotal(activeUser("alice"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = svc.GetNotifications(Guest(), 20, 0)
	assert.Equal(t, exception.ErrAuthentication, err)
}

func TestDeleteNotificationOwnership(t *testing.T) {
	notifs, svc := newNotificationFixture(t)

	svc.NotifyCommentAnswer("alice", "comment-1", "bob")

	var id string
	for _, n := range notifs.items {
		id = n.ID
	}

	assert.Equal(t, exception.ErrAccessDenied, svc.DeleteNotification(activeUser("carol"), id))
	require.NoError(t, svc.DeleteNotification(activeUser("alice"), id))

	err := svc.DeleteNotification(activeUser("alice"), id)
	assert.Equal(t, exception.KindNotFound, exception.KindOf(err))
}
