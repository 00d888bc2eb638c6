package handler

import (
	"errors"
	"net/http"
	"strconv"

	"SkillSphere/internal/middleware"
	"SkillSphere/internal/service"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	svc *service.SkillService
}

func NewSkillHandler(svc *service.SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

func (h *SkillHandler) Create(c *gin.Context) {
	var in service.SkillInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	userID := c.GetUint64(middleware.ContextUserIDKey)

	skill, err := h.svc.Add(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, service.ErrSkillExists) {
			c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, skill)
}

func (h *SkillHandler) Update(c *gin.Context) {
	skillID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	userID := c.GetUint64(middleware.ContextUserIDKey)

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	skill, err := h.svc.Update(c.Request.Context(), userID, skillID, fields)
	if err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "skill not found or unauthorized"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, skill)
}

func (h *SkillHandler) Delete(c *gin.Context) {
	skillID, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	userID := c.GetUint64(middleware.ContextUserIDKey)

	if err := h.svc.Delete(c.Request.Context(), userID, skillID); err != nil {
		if errors.Is(err, service.ErrSkillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "skill not found or unauthorized"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_id": skillID})
}

func (h *SkillHandler) ListByUser(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	list, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": list})
}
