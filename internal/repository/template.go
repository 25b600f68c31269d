package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stephen-golban/claxon-server/internal/apperr"
	"github.com/stephen-golban/claxon-server/internal/models"
)

// TemplateRepository 消息模板数据仓库
type TemplateRepository struct {
	db *DB
}

// NewTemplateRepository 创建模板仓库
func NewTemplateRepository(db *DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = `id, category, message_en, message_ro, message_ru, is_active, created_at, updated_at`

func scanTemplate(row pgx.Row) (*models.ClaxonTemplate, error) {
	t := &models.ClaxonTemplate{}
	err := row.Scan(
		&t.ID,
		&t.Category,
		&t.MessageEn,
		&t.MessageRo,
		&t.MessageRu,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create 创建模板
func (r *TemplateRepository) Create(ctx context.Context, t *models.ClaxonTemplate) error {
	query := `
		INSERT INTO claxon_templates (id, category, message_en, message_ro, message_ru, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Pool.Exec(ctx, query,
		t.ID,
		t.Category,
		t.MessageEn,
		t.MessageRo,
		t.MessageRu,
		t.IsActive,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

// GetByID 通过 ID 获取模板
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*models.ClaxonTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM claxon_templates WHERE id = $1`
	t, err := scanTemplate(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("template not found")
		}
		return nil, fmt.Errorf("get template by id: %w", err)
	}
	return t, nil
}

// ListActive 获取全部激活模板
func (r *TemplateRepository) ListActive(ctx context.Context) ([]*models.ClaxonTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM claxon_templates WHERE is_active = true ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []*models.ClaxonTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}

	return templates, nil
}

// Update 更新模板
func (r *TemplateRepository) Update(ctx context.Context, t *models.ClaxonTemplate) error {
	query := `
		UPDATE claxon_templates SET category = $1, message_en = $2, message_ro = $3, message_ru = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`
	tag, err := r.db.Pool.Exec(ctx, query,
		t.Category,
		t.MessageEn,
		t.MessageRo,
		t.MessageRu,
		t.IsActive,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("template not found")
	}
	return nil
}

// Delete 删除模板
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM claxon_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("template not found")
	}
	return nil
}
