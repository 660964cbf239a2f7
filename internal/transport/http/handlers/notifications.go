package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/service"
	"github.com/supplykingmv/vcard/internal/transport/http/middlewares"
)

type NotificationHandler struct {
	notifications *service.NotificationSvc
}

func NewNotificationHandler(n *service.NotificationSvc) *NotificationHandler {
	return &NotificationHandler{notifications: n}
}

func (h *NotificationHandler) List(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	out, err := h.notifications.VisibleFor(c.Request.Context(), u, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out})
}

// Create is the admin "send to all users" action.
func (h *NotificationHandler) Create(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	var in struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.notifications.Create(c.Request.Context(), domain.Notification{
		Message:    in.Message,
		SenderID:   u.ID,
		SenderName: u.Name,
		Type:       domain.NotificationAdminCustom,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, n)
}

// Clear dismisses one notification for the caller only.
func (h *NotificationHandler) Clear(c *gin.Context) {
	u := middlewares.CurrentUser(c)
	updated, err := h.notifications.Clear(c.Request.Context(), u.ID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}
