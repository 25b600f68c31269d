package models

import "time"

// ClaxonTemplate 预置消息模板（管理员维护，三语言）
type ClaxonTemplate struct {
	ID        string    `json:"id" db:"id"`
	Category  string    `json:"category" db:"category"`
	MessageEn string    `json:"message_en" db:"message_en"`
	MessageRo string    `json:"message_ro" db:"message_ro"`
	MessageRu string    `json:"message_ru" db:"message_ru"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LocalizedTemplate 按语言投影后的模板（三个消息字段折叠为一个 message）
type LocalizedTemplate struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Localize 按语言代码投影，未知语言回落到罗马尼亚语
func (t *ClaxonTemplate) Localize(language string) LocalizedTemplate {
	message := t.MessageRo
	switch language {
	case LanguageEn:
		message = t.MessageEn
	case LanguageRu:
		message = t.MessageRu
	case LanguageRo:
		message = t.MessageRo
	}

	return LocalizedTemplate{
		ID:        t.ID,
		Category:  t.Category,
		Message:   message,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
