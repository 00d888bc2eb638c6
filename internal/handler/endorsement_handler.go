package handler

import (
	"errors"
	"net/http"
	"strconv"

	"SkillSphere/internal/middleware"
	"SkillSphere/internal/service"

	"github.com/gin-gonic/gin"
)

type EndorsementHandler struct {
	svc *service.EndorsementService
}

func NewEndorsementHandler(svc *service.EndorsementService) *EndorsementHandler {
	return &EndorsementHandler{svc: svc}
}

type ToggleReq struct {
	SkillID    uint64 `json:"skill_id" binding:"required"`
	EndorsedTo uint64 `json:"endorsed_to" binding:"required"`
}

// Toggle 新增返回 201 + 背书记录；取消返回 200 + removed 标记
func (h *EndorsementHandler) Toggle(c *gin.Context) {
	var req ToggleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	actorID := c.GetUint64(middleware.ContextUserIDKey)

	res, err := h.svc.Toggle(c.Request.Context(), actorID, req.SkillID, req.EndorsedTo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrSelfEndorse):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		case errors.Is(err, service.ErrSkillNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		}
		return
	}

	if res.Removed {
		c.JSON(http.StatusOK, gin.H{"removed": true, "id": res.Endorsement.ID})
		return
	}
	c.JSON(http.StatusCreated, res.Endorsement)
}

func (h *EndorsementHandler) Recent(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Param("userId"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	list, err := h.svc.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"endorsements": list})
}

func (h *EndorsementHandler) Count(c *gin.Context) {
	skillID, _ := strconv.ParseUint(c.Param("skillId"), 10, 64)

	cnt, err := h.svc.CountForSkill(c.Request.Context(), skillID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidID) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"skill_id": skillID, "count": cnt})
}
