package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listNotificationsHandler(notifications notificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		unreadOnly := c.Query("unread") == "true"

		list, err := notifications.List(c.Request.Context(), currentUser(c).ID, unreadOnly)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func markNotificationReadHandler(notifications notificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := notifications.MarkRead(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, n)
	}
}

func markAllNotificationsReadHandler(notifications notificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		updated, err := notifications.MarkAllRead(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"updated": updated})
	}
}
