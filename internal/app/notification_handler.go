package app

import (
	"net/http"
	"strconv"

	"blogapi/internal/middleware"
	"blogapi/internal/service"
	"blogapi/internal/util"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetNotifications handles listing the caller's notifications
// GET /api/v1/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		util.BadRequest(c, "limit must be a number")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		util.BadRequest(c, "offset must be a number")
		return
	}

	notifications, err := h.notificationService.GetNotifications(middleware.PrincipalFrom(c), limit, offset)
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Notifications retrieved successfully", gin.H{
		"notifications": notifications,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetTotal handles the caller's notification count
// GET /api/v1/notifications/total
func (h *NotificationHandler) GetTotal(c *gin.Context) {
	total, err := h.notificationService.GetTotal(middleware.PrincipalFrom(c))
	if err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Notification count retrieved successfully", gin.H{"total": total})
}

// DeleteNotification handles deleting one of the caller's notifications
// DELETE /api/v1/notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	if err := h.notificationService.DeleteNotification(middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		util.DomainError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Notification deleted successfully", nil)
}
