package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barber-booking-backend/internal/store"
)

// GetNotifications handles GET /api/notifications: the owner feed, newest
// first. The store already degrades to an empty list on read failure.
func (h *Handler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListNotifications(c.Request.Context()))
}

// MarkNotificationRead handles POST /api/notifications/:id/read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
		return
	}

	if err := h.store.MarkNotificationRead(c.Request.Context(), id); err != nil {
		if err == store.ErrNotificationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Notification not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update notification"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification marked as read"})
}
