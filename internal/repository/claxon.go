package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
)

// ClaxonRepository 消息数据仓库
type ClaxonRepository struct {
	db *DB
}

// NewClaxonRepository 创建消息仓库
func NewClaxonRepository(db *DB) *ClaxonRepository {
	return &ClaxonRepository{db: db}
}

// CreateClaxonParams 创建消息所需的已校验输入
type CreateClaxonParams struct {
	ID            string
	SenderID      string
	RecipientID   string
	VehicleID     string
	TemplateID    *string
	CustomMessage *string
	Type          string
}

const claxonColumns = `c.id, c.sender_id, c.recipient_id, c.vehicle_id, c.template_id, c.custom_message, c.type, c.sender_language, c.read, c.read_at, c.created_at, c.updated_at`

func scanClaxon(row pgx.Row, c *models.Claxon, extra ...any) error {
	dest := []any{
		&c.ID,
		&c.SenderID,
		&c.RecipientID,
		&c.VehicleID,
		&c.TemplateID,
		&c.CustomMessage,
		&c.Type,
		&c.SenderLanguage,
		&c.Read,
		&c.ReadAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// CreateChecked 在单个事务内完成全部存在性/归属校验和插入。
// 任何一步失败则整体回滚，不会产生部分写入。
func (r *ClaxonRepository) CreateChecked(ctx context.Context, params CreateClaxonParams) (*models.ClaxonDetail, error) {
	var detail *models.ClaxonDetail

	err := r.db.InTx(ctx, func(tx pgx.Tx) error {
		// 1. 发送者必须存在，sender_language 取自发送者的语言设置
		var senderLanguage string
		err := tx.QueryRow(ctx, `SELECT language FROM users WHERE id = $1`, params.SenderID).Scan(&senderLanguage)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("sender not found")
			}
			return fmt.Errorf("resolve sender: %w", err)
		}

		// 2. 接收者必须存在
		var recipientID string
		err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, params.RecipientID).Scan(&recipientID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("recipient not found")
			}
			return fmt.Errorf("resolve recipient: %w", err)
		}

		// 3. 车辆必须存在且属于接收者。
		// 故意使用合并的错误消息，不暴露具体是哪个条件失败。
		var vehicleID string
		err = tx.QueryRow(ctx, `SELECT id FROM vehicles WHERE id = $1 AND user_id = $2`, params.VehicleID, params.RecipientID).Scan(&vehicleID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.NotFound("vehicle not found or does not belong to recipient")
			}
			return fmt.Errorf("resolve vehicle: %w", err)
		}

		// 4. 模板（如指定）必须存在
		if params.TemplateID != nil {
			var templateID string
			err = tx.QueryRow(ctx, `SELECT id FROM claxon_templates WHERE id = $1`, *params.TemplateID).Scan(&templateID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperr.NotFound("template not found")
				}
				return fmt.Errorf("resolve template: %w", err)
			}
		}

		// 5. 插入，sender_id 取自已解析的发送者，绝不信任客户端传入的值
		now := time.Now()
		_, err = tx.Exec(ctx, `
			INSERT INTO claxons (id, sender_id, recipient_id, vehicle_id, template_id, custom_message, type, sender_language, read, read_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false, NULL, $9, $10)
		`,
			params.ID,
			params.SenderID,
			params.RecipientID,
			params.VehicleID,
			params.TemplateID,
			params.CustomMessage,
			params.Type,
			senderLanguage,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert claxon: %w", err)
		}

		// 6. 重新查询复合视图
		detail, err = getDetail(ctx, tx, params.ID)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// getDetail 获取带发送者/接收者受限投影、车辆和模板的复合视图
func getDetail(ctx context.Context, q Querier, id string) (*models.ClaxonDetail, error) {
	query := `
		SELECT ` + claxonColumns + `,
		       s.id, s.first_name, s.last_name,
		       r.id, r.first_name, r.last_name,
		       v.id, v.user_id, v.brand, v.model, v.color, v.vin, v.plate_number, v.plate_type, v.plate_country, v.is_active, v.created_at, v.updated_at,
		       t.id, t.category, t.message_en, t.message_ro, t.message_ru, t.is_active, t.created_at, t.updated_at
		FROM claxons c
		JOIN users s ON s.id = c.sender_id
		JOIN users r ON r.id = c.recipient_id
		JOIN vehicles v ON v.id = c.vehicle_id
		LEFT JOIN claxon_templates t ON t.id = c.template_id
		WHERE c.id = $1
	`
	detail := &models.ClaxonDetail{}
	vehicle := &models.Vehicle{}
	var (
		tplID        *string
		tplCategory  *string
		tplEn        *string
		tplRo        *string
		tplRu        *string
		tplActive    *bool
		tplCreatedAt *time.Time
		tplUpdatedAt *time.Time
	)
	err := scanClaxon(q.QueryRow(ctx, query, id), &detail.Claxon,
		&detail.Sender.ID, &detail.Sender.FirstName, &detail.Sender.LastName,
		&detail.Recipient.ID, &detail.Recipient.FirstName, &detail.Recipient.LastName,
		&vehicle.ID, &vehicle.UserID, &vehicle.Brand, &vehicle.Model, &vehicle.Color, &vehicle.VIN,
		&vehicle.PlateNumber, &vehicle.PlateType, &vehicle.PlateCountry, &vehicle.IsActive,
		&vehicle.CreatedAt, &vehicle.UpdatedAt,
		&tplID, &tplCategory, &tplEn, &tplRo, &tplRu, &tplActive, &tplCreatedAt, &tplUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("claxon not found")
		}
		return nil, fmt.Errorf("get claxon detail: %w", err)
	}

	detail.Vehicle = vehicle
	if tplID != nil {
		detail.Template = &models.ClaxonTemplate{
			ID:        *tplID,
			Category:  *tplCategory,
			MessageEn: *tplEn,
			MessageRo: *tplRo,
			MessageRu: *tplRu,
			IsActive:  *tplActive,
			CreatedAt: *tplCreatedAt,
			UpdatedAt: *tplUpdatedAt,
		}
	}

	return detail, nil
}

// GetDetailForUser 获取单条消息，调用者必须是发送者或接收者
func (r *ClaxonRepository) GetDetailForUser(ctx context.Context, id, userID string) (*models.ClaxonDetail, error) {
	var belongs bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM claxons WHERE id = $1 AND (sender_id = $2 OR recipient_id = $2))`,
		id, userID,
	).Scan(&belongs)
	if err != nil {
		return nil, fmt.Errorf("check claxon access: %w", err)
	}
	if !belongs {
		return nil, apperr.NotFound("claxon not found")
	}

	return getDetail(ctx, r.db.Pool, id)
}

// listFiltered 收件箱/发件箱公共查询，scope 为 recipient_id 或 sender_id
func (r *ClaxonRepository) listFiltered(ctx context.Context, scopeColumn, userID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error) {
	query := `
		SELECT ` + claxonColumns + `,
		       s.id, s.first_name, s.last_name,
		       r.id, r.first_name, r.last_name
		FROM claxons c
		JOIN users s ON s.id = c.sender_id
		JOIN users r ON r.id = c.recipient_id
		WHERE c.` + scopeColumn + ` = $1`
	args := []any{userID}

	if filter.Read != nil {
		args = append(args, *filter.Read)
		query += fmt.Sprintf(" AND c.read = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(" AND c.type = $%d", len(args))
	}
	if filter.SenderLanguage != nil {
		args = append(args, *filter.SenderLanguage)
		query += fmt.Sprintf(" AND c.sender_language = $%d", len(args))
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list claxons: %w", err)
	}
	defer rows.Close()

	var claxons []*models.ClaxonDetail
	for rows.Next() {
		detail := &models.ClaxonDetail{}
		err := scanClaxon(rows, &detail.Claxon,
			&detail.Sender.ID, &detail.Sender.FirstName, &detail.Sender.LastName,
			&detail.Recipient.ID, &detail.Recipient.FirstName, &detail.Recipient.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan claxon: %w", err)
		}
		claxons = append(claxons, detail)
	}

	return claxons, nil
}

// ListInbox 收件箱，按创建时间倒序
func (r *ClaxonRepository) ListInbox(ctx context.Context, recipientID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error) {
	return r.listFiltered(ctx, "recipient_id", recipientID, filter)
}

// ListSent 发件箱，按创建时间倒序
func (r *ClaxonRepository) ListSent(ctx context.Context, senderID string, filter models.ClaxonFilter) ([]*models.ClaxonDetail, error) {
	return r.listFiltered(ctx, "sender_id", senderID, filter)
}

// CountUnread 统计接收者的未读消息数
func (r *ClaxonRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM claxons WHERE recipient_id = $1 AND read = false`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread claxons: %w", err)
	}
	return count, nil
}

// GetForRecipient 获取消息，调用者必须是接收者
func (r *ClaxonRepository) GetForRecipient(ctx context.Context, id, recipientID string) (*models.Claxon, error) {
	query := `SELECT ` + claxonColumns + ` FROM claxons c WHERE c.id = $1 AND c.recipient_id = $2`
	c := &models.Claxon{}
	err := scanClaxon(r.db.Pool.QueryRow(ctx, query, id, recipientID), c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("claxon not found")
		}
		return nil, fmt.Errorf("get claxon for recipient: %w", err)
	}
	return c, nil
}

// UpdateReadStatus 更新已读状态
func (r *ClaxonRepository) UpdateReadStatus(ctx context.Context, c *models.Claxon) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE claxons SET read = $1, read_at = $2, updated_at = $3 WHERE id = $4 AND recipient_id = $5`,
		c.Read,
		c.ReadAt,
		c.UpdatedAt,
		c.ID,
		c.RecipientID,
	)
	if err != nil {
		return fmt.Errorf("update claxon read status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("claxon not found")
	}
	return nil
}
