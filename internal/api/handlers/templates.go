package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stephen-golban/claxon-server/internal/service"
)

type createTemplateRequest struct {
	Category  string `json:"category" binding:"required,max=50"`
	MessageEn string `json:"message_en" binding:"required"`
	MessageRo string `json:"message_ro" binding:"required"`
	MessageRu string `json:"message_ru" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

type updateTemplateRequest struct {
	Category  *string `json:"category" binding:"omitempty,max=50"`
	MessageEn *string `json:"message_en"`
	MessageRo *string `json:"message_ro"`
	MessageRu *string `json:"message_ru"`
	IsActive  *bool   `json:"is_active"`
}

// CreateTemplate 创建模板（管理员操作）
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	template, err := h.templates.Create(c.Request.Context(), service.CreateTemplateInput{
		Category:  req.Category,
		MessageEn: req.MessageEn,
		MessageRo: req.MessageRo,
		MessageRu: req.MessageRu,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusCreated, template)
}

// ListTemplates 获取激活模板，支持 ?category= 与 ?language= 投影
func (h *Handler) ListTemplates(c *gin.Context) {
	var category *string
	if v := c.Query("category"); v != "" {
		category = &v
	}

	if language := c.Query("language"); language != "" {
		templates, err := h.templates.ListLocalized(c.Request.Context(), category, language)
		if err != nil {
			h.fail(c, err)
			return
		}
		h.ok(c, http.StatusOK, templates)
		return
	}

	templates, err := h.templates.List(c.Request.Context(), category)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, templates)
}

// ListTemplatesByCategory 按类别获取激活模板（公开）
func (h *Handler) ListTemplatesByCategory(c *gin.Context) {
	category := c.Param("category")

	if language := c.Query("language"); language != "" {
		templates, err := h.templates.ListLocalized(c.Request.Context(), &category, language)
		if err != nil {
			h.fail(c, err)
			return
		}
		h.ok(c, http.StatusOK, templates)
		return
	}

	templates, err := h.templates.List(c.Request.Context(), &category)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, templates)
}

// GetTemplate 获取单个模板
func (h *Handler) GetTemplate(c *gin.Context) {
	if language := c.Query("language"); language != "" {
		template, err := h.templates.GetLocalized(c.Request.Context(), c.Param("id"), language)
		if err != nil {
			h.fail(c, err)
			return
		}
		h.ok(c, http.StatusOK, template)
		return
	}

	template, err := h.templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, template)
}

// UpdateTemplate 更新模板（管理员操作）
func (h *Handler) UpdateTemplate(c *gin.Context) {
	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	template, err := h.templates.Update(c.Request.Context(), c.Param("id"), service.UpdateTemplateInput{
		Category:  req.Category,
		MessageEn: req.MessageEn,
		MessageRo: req.MessageRo,
		MessageRu: req.MessageRu,
		IsActive:  req.IsActive,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, template)
}

// DeleteTemplate 删除模板（管理员操作）
func (h *Handler) DeleteTemplate(c *gin.Context) {
	if err := h.templates.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	h.okMessage(c, "template deleted")
}
