package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockbot/internal/service"
)

type NotificationController struct {
	Notifications *service.NotificationService
}

// GetNotifications returns a page of notifications, newest first.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	page, limit, skip := pageParams(c)
	search := c.Query("search")

	notifications, total, err := nc.Notifications.GetNotifications(c.Request.Context(), search, skip, limit)
	if err != nil {
		log.Printf("failed to get notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, NewPage(notifications, total, page, len(notifications), limit))
}

// GetNotification returns a single notification by id.
func (nc *NotificationController) GetNotification(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid notification id"})
		return
	}

	notification, err := nc.Notifications.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		log.Printf("failed to get notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, notification)
}
