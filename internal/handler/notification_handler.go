package handler

import (
	"errors"
	"net/http"
	"strconv"

	"SkillSphere/internal/middleware"
	"SkillSphere/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.GetUint64(middleware.ContextUserIDKey)

	count, err := h.svc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// List 可选 read=true/false 过滤，分页
func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.GetUint64(middleware.ContextUserIDKey)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	var read *bool
	switch c.Query("read") {
	case "true":
		v := true
		read = &v
	case "false":
		v := false
		read = &v
	}

	list, err := h.svc.List(c.Request.Context(), userID, read, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "page": page})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetUint64(middleware.ContextUserIDKey)
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.MarkRead(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "notification not found or not authorized"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetUint64(middleware.ContextUserIDKey)

	updated, err := h.svc.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated_count": updated})
}

func (h *NotificationHandler) DeleteRead(c *gin.Context) {
	userID := c.GetUint64(middleware.ContextUserIDKey)

	deleted, err := h.svc.DeleteRead(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
}

func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	userID := c.GetUint64(middleware.ContextUserIDKey)

	deleted, err := h.svc.DeleteAll(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
}
