package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"ehealth-portal-server/internal/utils"
)

// NotificationHandler handles the notification read model.
type NotificationHandler struct {
	Notifications NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

// List returns the caller's notifications newest-first. Clients poll this.
func (h *NotificationHandler) List(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	ns, err := h.Notifications.ListFor(c.Request.Context(), a.Email)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}
	utils.Success(c, "Notifications fetched successfully", ns)
}

// MarkRead flips one notification to read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid notification ID format")
		return
	}

	if err := h.Notifications.MarkRead(c.Request.Context(), uint(id)); err != nil {
		respondCoreError(c, err)
		return
	}
	utils.Success(c, "Notification marked as read", nil)
}

// MarkReadByRequest marks every notification the caller has for a request
// as read in one step.
func (h *NotificationHandler) MarkReadByRequest(c *gin.Context) {
	a, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requestIDParam(c)
	if !ok {
		return
	}

	updated, err := h.Notifications.MarkReadByRequest(c.Request.Context(), id, a.Email)
	if err != nil {
		utils.InternalServerError(c, "Failed to mark notifications read: "+err.Error())
		return
	}
	utils.Success(c, "Notifications marked as read", gin.H{"updated": updated})
}
