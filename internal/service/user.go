package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
)

// UserService 用户服务
type UserService struct {
	logger *zap.Logger
	users  UserStore
}

// NewUserService 创建用户服务
func NewUserService(logger *zap.Logger, users UserStore) *UserService {
	return &UserService{logger: logger, users: users}
}

// CreateUserInput 创建用户的已校验输入
type CreateUserInput struct {
	Phone                   string
	Email                   string
	FirstName               *string
	LastName                *string
	DateOfBirth             *time.Time
	Gender                  *string
	Language                *string
	AvatarURL               *string
	PrivacySettings         *models.PrivacySettings
	NotificationPreferences *models.NotificationPreferences
}

// UpdateUserInput 部分更新输入，nil 字段保持不变
type UpdateUserInput struct {
	FirstName               *string
	LastName                *string
	DateOfBirth             *time.Time
	Gender                  *string
	Language                *string
	AvatarURL               *string
	PrivacySettings         *models.PrivacySettings
	NotificationPreferences *models.NotificationPreferences
}

// Create 创建用户，外部 id、手机号、邮箱三项依次查重
func (s *UserService) Create(ctx context.Context, externalID string, in CreateUserInput) (*models.User, error) {
	if _, err := s.users.GetByID(ctx, externalID); err == nil {
		return nil, apperr.Conflict("user with this account already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	if _, err := s.users.GetByPhone(ctx, in.Phone); err == nil {
		return nil, apperr.Conflict("user with this phone already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Conflict("user with this email already exists")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	language := models.DefaultLanguage
	if in.Language != nil && *in.Language != "" {
		language = *in.Language
	}

	now := time.Now()
	user := &models.User{
		ID:                      externalID,
		Phone:                   in.Phone,
		Email:                   in.Email,
		FirstName:               in.FirstName,
		LastName:                in.LastName,
		DateOfBirth:             in.DateOfBirth,
		Gender:                  in.Gender,
		Language:                language,
		AvatarURL:               in.AvatarURL,
		PrivacySettings:         in.PrivacySettings,
		NotificationPreferences: in.NotificationPreferences,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created", zap.String("user_id", user.ID))
	return user, nil
}

// GetByExternalID 通过外部 id 获取用户
func (s *UserService) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.users.GetByID(ctx, externalID)
}

// Update 部分更新用户资料
func (s *UserService) Update(ctx context.Context, externalID string, in UpdateUserInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = in.FirstName
	}
	if in.LastName != nil {
		user.LastName = in.LastName
	}
	if in.DateOfBirth != nil {
		user.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		user.Gender = in.Gender
	}
	if in.Language != nil {
		user.Language = *in.Language
	}
	if in.AvatarURL != nil {
		user.AvatarURL = in.AvatarURL
	}
	if in.PrivacySettings != nil {
		user.PrivacySettings = in.PrivacySettings
	}
	if in.NotificationPreferences != nil {
		user.NotificationPreferences = in.NotificationPreferences
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Remove 硬删除用户，依赖数据库级联清理车辆和消息
func (s *UserService) Remove(ctx context.Context, externalID string) error {
	if err := s.users.Delete(ctx, externalID); err != nil {
		return err
	}

	s.logger.Info("User deleted", zap.String("user_id", externalID))
	return nil
}
