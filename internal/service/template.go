package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stephen-golban/claxon-server/internal/models"
)

// TemplateService 消息模板服务
type TemplateService struct {
	logger    *zap.Logger
	templates TemplateStore
}

// NewTemplateService 创建模板服务
func NewTemplateService(logger *zap.Logger, templates TemplateStore) *TemplateService {
	return &TemplateService{logger: logger, templates: templates}
}

// CreateTemplateInput 创建模板的已校验输入（管理员操作）
type CreateTemplateInput struct {
	Category  string
	MessageEn string
	MessageRo string
	MessageRu string
	IsActive  *bool
}

// UpdateTemplateInput 部分更新输入，nil 字段保持不变
type UpdateTemplateInput struct {
	Category  *string
	MessageEn *string
	MessageRo *string
	MessageRu *string
	IsActive  *bool
}

// Create 创建模板
func (s *TemplateService) Create(ctx context.Context, in CreateTemplateInput) (*models.ClaxonTemplate, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	now := time.Now()
	t := &models.ClaxonTemplate{
		ID:        uuid.NewString(),
		Category:  in.Category,
		MessageEn: in.MessageEn,
		MessageRo: in.MessageRo,
		MessageRu: in.MessageRu,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Template created",
		zap.String("template_id", t.ID),
		zap.String("category", t.Category),
	)
	return t, nil
}

// List 获取激活模板，可选按类别过滤（内存中后置过滤）
func (s *TemplateService) List(ctx context.Context, category *string) ([]*models.ClaxonTemplate, error) {
	templates, err := s.templates.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if category == nil {
		return templates, nil
	}

	filtered := make([]*models.ClaxonTemplate, 0, len(templates))
	for _, t := range templates {
		if t.Category == *category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// ListLocalized 获取激活模板并按语言投影
func (s *TemplateService) ListLocalized(ctx context.Context, category *string, language string) ([]models.LocalizedTemplate, error) {
	templates, err := s.List(ctx, category)
	if err != nil {
		return nil, err
	}

	localized := make([]models.LocalizedTemplate, 0, len(templates))
	for _, t := range templates {
		localized = append(localized, t.Localize(language))
	}
	return localized, nil
}

// Get 获取单个模板
func (s *TemplateService) Get(ctx context.Context, id string) (*models.ClaxonTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

// GetLocalized 获取单个模板并按语言投影
func (s *TemplateService) GetLocalized(ctx context.Context, id, language string) (*models.LocalizedTemplate, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	localized := t.Localize(language)
	return &localized, nil
}

// Update 更新模板，先做存在性检查
func (s *TemplateService) Update(ctx context.Context, id string, in UpdateTemplateInput) (*models.ClaxonTemplate, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		t.Category = *in.Category
	}
	if in.MessageEn != nil {
		t.MessageEn = *in.MessageEn
	}
	if in.MessageRo != nil {
		t.MessageRo = *in.MessageRo
	}
	if in.MessageRu != nil {
		t.MessageRu = *in.MessageRu
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	t.UpdatedAt = time.Now()

	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Remove 删除模板，先做存在性检查
func (s *TemplateService) Remove(ctx context.Context, id string) error {
	if _, err := s.templates.GetByID(ctx, id); err != nil {
		return err
	}

	return s.templates.Delete(ctx, id)
}
