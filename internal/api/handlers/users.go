package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stephen-golban/claxon-server/internal/api/middleware"
	"github.com/stephen-golban/claxon-server/internal/models"
	"github.com/stephen-golban/claxon-server/internal/service"
)

type createUserRequest struct {
	Phone                   string                          `json:"phone" binding:"required,e164"`
	Email                   string                          `json:"email" binding:"required,email"`
	FirstName               *string                         `json:"first_name" binding:"omitempty,max=100"`
	LastName                *string                         `json:"last_name" binding:"omitempty,max=100"`
	DateOfBirth             *time.Time                      `json:"date_of_birth"`
	Gender                  *string                         `json:"gender" binding:"omitempty,oneof=male female other"`
	Language                *string                         `json:"language" binding:"omitempty,claxonlang"`
	AvatarURL               *string                         `json:"avatar_url" binding:"omitempty,url"`
	PrivacySettings         *models.PrivacySettings         `json:"privacy_settings"`
	NotificationPreferences *models.NotificationPreferences `json:"notification_preferences"`
}

type updateUserRequest struct {
	FirstName               *string                         `json:"first_name" binding:"omitempty,max=100"`
	LastName                *string                         `json:"last_name" binding:"omitempty,max=100"`
	DateOfBirth             *time.Time                      `json:"date_of_birth"`
	Gender                  *string                         `json:"gender" binding:"omitempty,oneof=male female other"`
	Language                *string                         `json:"language" binding:"omitempty,claxonlang"`
	AvatarURL               *string                         `json:"avatar_url" binding:"omitempty,url"`
	PrivacySettings         *models.PrivacySettings         `json:"privacy_settings"`
	NotificationPreferences *models.NotificationPreferences `json:"notification_preferences"`
}

// CreateUser 注册完成后创建用户记录
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	user, err := h.users.Create(c.Request.Context(), middleware.CallerID(c), service.CreateUserInput{
		Phone:                   req.Phone,
		Email:                   req.Email,
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		DateOfBirth:             req.DateOfBirth,
		Gender:                  req.Gender,
		Language:                req.Language,
		AvatarURL:               req.AvatarURL,
		PrivacySettings:         req.PrivacySettings,
		NotificationPreferences: req.NotificationPreferences,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusCreated, user)
}

// GetCurrentUser 获取当前用户资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.users.GetByExternalID(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, user)
}

// UpdateCurrentUser 更新当前用户资料
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.failBinding(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.CallerID(c), service.UpdateUserInput{
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		DateOfBirth:             req.DateOfBirth,
		Gender:                  req.Gender,
		Language:                req.Language,
		AvatarURL:               req.AvatarURL,
		PrivacySettings:         req.PrivacySettings,
		NotificationPreferences: req.NotificationPreferences,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.ok(c, http.StatusOK, user)
}

// DeleteCurrentUser 删除当前用户账号
func (h *Handler) DeleteCurrentUser(c *gin.Context) {
	if err := h.users.Remove(c.Request.Context(), middleware.CallerID(c)); err != nil {
		h.fail(c, err)
		return
	}

	h.okMessage(c, "account deleted")
}
