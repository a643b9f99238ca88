package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"blogapi/internal/exception"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/util"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notification_exchange"
	NotificationRouteKey  = "notification"
)

// NotificationMessage is the queue payload pushed through RabbitMQ to the
// websocket worker.
type NotificationMessage struct {
	OwnerID   string    `json:"owner_id"`
	Type      string    `json:"type"`
	ContentID string    `json:"content_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type NotificationService struct {
	notifs    repository.NotificationRepository
	rabbit    *util.RabbitMQClient
	access    *AccessService
	validator *Validator
}

func NewNotificationService(
	notifs repository.NotificationRepository,
	rabbit *util.RabbitMQClient,
	access *AccessService,
	validator *Validator,
) *NotificationService {
	return &NotificationService{
		notifs:    notifs,
		rabbit:    rabbit,
		access:    access,
		validator: validator,
	}
}

// NotifyCommentAnswer records a reply notification for the parent comment's
// author and hands it to the queue for realtime push. Best-effort: failures
// are logged and never propagate to the comment write.
func (s *NotificationService) NotifyCommentAnswer(ownerID, commentID, byUsername string) {
	notification := &model.Notification{
		OwnerID:   ownerID,
		Type:      model.NotificationTypeCommentAnswer,
		ContentID: &commentID,
		Content:   fmt.Sprintf("%s answered your comment", byUsername),
	}
	if err := s.notifs.Create(notification); err != nil {
		log.Printf("failed to store comment answer notification for %s: %v", ownerID, err)
		return
	}

	if s.rabbit == nil {
		return
	}
	msg := NotificationMessage{
		OwnerID:   ownerID,
		Type:      model.NotificationTypeCommentAnswer,
		ContentID: commentID,
		Content:   notification.Content,
		Timestamp: time.Now(),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("failed to marshal notification message: %v", err)
		return
	}
	if err := s.rabbit.Publish(NotificationExchange, NotificationRouteKey, body); err != nil {
		log.Printf("failed to publish notification message: %v", err)
	}
}

// GetNotifications lists the caller's own notifications, newest first.
func (s *NotificationService) GetNotifications(p Principal, limit, offset int) ([]*model.Notification, error) {
	if err := s.access.EnsureCanGetSelfNotifications(p); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = 20
	}
	if err := s.validator.ValidatePagination(limit, offset); err != nil {
		return nil, err
	}
	return s.notifs.FindByOwnerID(p.UserID, limit, offset)
}

// GetTotal returns the caller's notification count.
func (s *NotificationService) GetTotal(p Principal) (int64, error) {
	if err := s.access.EnsureCanGetSelfNotifications(p); err != nil {
		return 0, err
	}
	return s.notifs.CountByOwnerID(p.UserID)
}

// DeleteNotification removes one of the caller's own notifications. The
// self capability never reaches someone else's inbox.
func (s *NotificationService) DeleteNotification(p Principal, notificationID string) error {
	if err := s.access.EnsureCanDeleteSelfNotification(p); err != nil {
		return err
	}

	notification, err := s.notifs.FindByID(notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return exception.NotFound("notification not found")
	}
	if notification.OwnerID != p.UserID {
		return exception.ErrAccessDenied
	}
	return s.notifs.Delete(notificationID)
}
