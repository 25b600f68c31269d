package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
	"github.com/stephen-golban/claxon-server/internal/repository"
	"github.com/stephen-golban/claxon-server/internal/state"
)

// 分页边界
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ClaxonService 消息服务
type ClaxonService struct {
	logger   *zap.Logger
	users    UserStore
	claxons  ClaxonStore
	notifier Notifier
}

// NewClaxonService 创建消息服务
func NewClaxonService(logger *zap.Logger, users UserStore, claxons ClaxonStore, notifier Notifier) *ClaxonService {
	return &ClaxonService{logger: logger, users: users, claxons: claxons, notifier: notifier}
}

// CreateClaxonInput 创建消息的已校验输入
type CreateClaxonInput struct {
	RecipientID   string
	VehicleID     string
	TemplateID    *string
	CustomMessage *string
}

// UpdateClaxonInput 已读状态更新输入（接收者专属）
type UpdateClaxonInput struct {
	Read *bool
}

// normalizeFilter 分页参数钳制到合法范围
func normalizeFilter(filter models.ClaxonFilter) models.ClaxonFilter {
	if filter.Limit < 1 || filter.Limit > MaxLimit {
		filter.Limit = DefaultLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

// Create 创建消息。所有存在性/归属校验和插入在仓库层的单个事务内完成，
// sender_id 取自已认证的调用者，绝不信任客户端传入的值。
func (s *ClaxonService) Create(ctx context.Context, senderExternalID string, in CreateClaxonInput) (*models.ClaxonDetail, error) {
	if in.TemplateID == nil && (in.CustomMessage == nil || strings.TrimSpace(*in.CustomMessage) == "") {
		return nil, apperr.Invalid("either template_id or custom_message is required")
	}

	claxonType := models.ClaxonTypeCustom
	if in.TemplateID != nil {
		claxonType = models.ClaxonTypeTemplate
	}

	detail, err := s.claxons.CreateChecked(ctx, repository.CreateClaxonParams{
		ID:            uuid.NewString(),
		SenderID:      senderExternalID,
		RecipientID:   in.RecipientID,
		VehicleID:     in.VehicleID,
		TemplateID:    in.TemplateID,
		CustomMessage: in.CustomMessage,
		Type:          claxonType,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Claxon created",
		zap.String("claxon_id", detail.ID),
		zap.String("sender_id", detail.SenderID),
		zap.String("recipient_id", detail.RecipientID),
	)

	// 通知接收者，失败不影响创建结果
	if s.notifier != nil {
		s.notifier.NotifyClaxon(detail.RecipientID, detail)
	}

	return detail, nil
}

// Inbox 收件箱
func (s *ClaxonService) Inbox(ctx context.Context, externalID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error) {
	caller, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.claxons.ListInbox(ctx, caller.ID, normalizeFilter(filter))
}

// Sent 发件箱
func (s *ClaxonService) Sent(ctx context.Context, externalID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error) {
	caller, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.claxons.ListSent(ctx, caller.ID, normalizeFilter(filter))
}

// Get 获取单条消息，调用者必须是发送者或接收者
func (s *ClaxonService) Get(ctx context.Context, id, externalID string) (*models.ClaxonDetail, error) {
	caller, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.claxons.GetDetailForUser(ctx, id, caller.ID)
}

// UnreadCount 接收者的未读消息数
func (s *ClaxonService) UnreadCount(ctx context.Context, externalID string) (int64, error) {
	caller, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return 0, err
	}

	return s.claxons.CountUnread(ctx, caller.ID)
}

// Update 更新已读状态。调用者必须是这条消息的接收者，发送者同样得到 Not-Found。
// created -> read 转换时写入 read_at，read 为终态后重复标记不再改动时间戳。
func (s *ClaxonService) Update(ctx context.Context, id, externalID string, in UpdateClaxonInput) (*models.Claxon, error) {
	caller, err := s.users.GetByID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	claxon, err := s.claxons.GetForRecipient(ctx, id, caller.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if in.Read != nil {
		machine := state.NewReadMachine(claxon.Read)
		if *in.Read {
			if machine.CanMarkRead() {
				if err := machine.MarkRead(); err != nil {
					return nil, err
				}
				claxon.Read = true
				readAt := now
				claxon.ReadAt = &readAt
			}
		} else {
			claxon.Read = false
			claxon.ReadAt = nil
		}
	}
	claxon.UpdatedAt = now

	if err := s.claxons.UpdateReadStatus(ctx, claxon); err != nil {
		return nil, err
	}

	return claxon, nil
}
