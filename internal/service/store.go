package service

import (
	"context"

	"github.com/stephen-golban/claxon-server/internal/models"
	"github.com/stephen-golban/claxon-server/internal/repository"
)

// UserStore 用户存储接口
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// VehicleStore 车辆存储接口
type VehicleStore interface {
	Create(ctx context.Context, v *models.Vehicle) error
	GetOwned(ctx context.Context, id, ownerID string) (*models.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID string, filter models.VehicleFilter) ([]*models.Vehicle, error)
	SearchByPlate(ctx context.Context, plateNumber string) ([]*models.PlateSearchResult, error)
	Update(ctx context.Context, v *models.Vehicle) error
	Delete(ctx context.Context, id, ownerID string) error
}

// TemplateStore 模板存储接口
type TemplateStore interface {
	Create(ctx context.Context, t *models.ClaxonTemplate) error
	GetByID(ctx context.Context, id string) (*models.ClaxonTemplate, error)
	ListActive(ctx context.Context) ([]*models.ClaxonTemplate, error)
	Update(ctx context.Context, t *models.ClaxonTemplate) error
	Delete(ctx context.Context, id string) error
}

// ClaxonStore 消息存储接口
type ClaxonStore interface {
	CreateChecked(ctx context.Context, params repository.CreateClaxonParams) (*models.ClaxonDetail, error)
	GetDetailForUser(ctx context.Context, id, userID string) (*models.ClaxonDetail, error)
	ListInbox(ctx context.Context, recipientID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error)
	ListSent(ctx context.Context, senderID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	GetForRecipient(ctx context.Context, id, recipientID string) (*models.Claxon, error)
	UpdateReadStatus(ctx context.Context, c *models.Claxon) error
}

// Notifier 新消息通知（外部协作者，尽力而为）
type Notifier interface {
	NotifyClaxon(recipientID string, claxon *models.ClaxonDetail)
}
