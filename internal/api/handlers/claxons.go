package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stephen-golban/claxon-server/internal/api/middleware"
	"github.com/stephen-golban/claxon-server/internal/service"
)

type createClaxonRequest struct {
	RecipientID   string  `json:"recipient_id" binding:"required"`
	VehicleID     string  `json:"vehicle_id" binding:"required,uuid"`
	TemplateID    *string `json:"template_id" binding:"omitempty,uuid"`
	CustomMessage *string `json:"custom_message" binding:"omitempty,max=500"`
}

type updateClaxonRequest struct {
	Read *bool `json:"read"`
}

// CreateClaxon 发送消息
func (h *Handler) CreateClaxon(c *gin.Context) {
	var req createClaxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	claxon, err := h.claxons.Create(c.Request.Context(), middleware.CallerID(c), service.CreateClaxonInput{
		RecipientID:   req.RecipientID,
		VehicleID:     req.VehicleID,
		TemplateID:    req.TemplateID,
		CustomMessage: req.CustomMessage,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusCreated, claxon)
}

// InboxClaxons 收件箱
func (h *Handler) InboxClaxons(c *gin.Context) {
	claxons, err := h.claxons.Inbox(c.Request.Context(), middleware.CallerID(c), parseClaxonFilter(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, claxons)
}

// UnreadCount 未读消息数
func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.claxons.UnreadCount(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, gin.H{"count": count})
}

// SentClaxons 发件箱
func (h *Handler) SentClaxons(c *gin.Context) {
	claxons, err := h.claxons.Sent(c.Request.Context(), middleware.CallerID(c), parseClaxonFilter(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, claxons)
}

// GetClaxon 获取单条消息（发送者或接收者）
func (h *Handler) GetClaxon(c *gin.Context) {
	claxon, err := h.claxons.Get(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, claxon)
}

// UpdateClaxon 更新已读状态（仅接收者）
func (h *Handler) UpdateClaxon(c *gin.Context) {
	var req updateClaxonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	claxon, err := h.claxons.Update(c.Request.Context(), c.Param("id"), middleware.CallerID(c), service.UpdateClaxonInput{
		Read: req.Read,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, claxon)
}
