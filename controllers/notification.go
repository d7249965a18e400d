package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"employee-records-api/services"
)

// NotificationController serves the caller's in-app inbox.
type NotificationController struct {
	inbox *services.InboxService
}

func NewNotificationController(inbox *services.InboxService) *NotificationController {
	return &NotificationController{inbox: inbox}
}

// List handles GET /notifications?unreadOnly=&limit=&offset=
func (n *NotificationController) List(c *gin.Context) {
	unreadOnly := strings.TrimSpace(c.Query("unreadOnly"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := n.inbox.List(c.Request.Context(), c.GetUint("userID"),
		unreadOnly == "1" || strings.EqualFold(unreadOnly, "true"), limit, offset)
	if err != nil {
		respondError(c, "Failed to fetch notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (n *NotificationController) Counter(c *gin.Context) {
	unread, err := n.inbox.UnreadCount(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		respondError(c, "Failed to count notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": unread})
}

func (n *NotificationController) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := n.inbox.MarkRead(c.Request.Context(), c.GetUint("userID"), id); err != nil {
		respondError(c, "Failed to update notification", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (n *NotificationController) MarkAllRead(c *gin.Context) {
	if err := n.inbox.MarkAllRead(c.Request.Context(), c.GetUint("userID")); err != nil {
		respondError(c, "Failed to update notifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
