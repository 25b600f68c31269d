package models

import "time"

// Claxon 消息类型
const (
	ClaxonTypeTemplate = "template"
	ClaxonTypeCustom   = "custom"
)

// Claxon 一条从 sender 发往 recipient 的定向消息，关联 recipient 的某辆车
type Claxon struct {
	ID             string     `json:"id" db:"id"`
	SenderID       string     `json:"sender_id" db:"sender_id"`
	RecipientID    string     `json:"recipient_id" db:"recipient_id"`
	VehicleID      string     `json:"vehicle_id" db:"vehicle_id"`
	TemplateID     *string    `json:"template_id,omitempty" db:"template_id"`
	CustomMessage  *string    `json:"custom_message,omitempty" db:"custom_message"`
	Type           string     `json:"type" db:"type"`
	SenderLanguage string     `json:"sender_language" db:"sender_language"`
	Read           bool       `json:"read" db:"read"`
	ReadAt         *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// ClaxonDetail 带关联数据的复合视图（双方仅受限投影）
type ClaxonDetail struct {
	Claxon
	Sender    UserSummary     `json:"sender"`
	Recipient UserSummary     `json:"recipient"`
	Vehicle   *Vehicle        `json:"vehicle,omitempty"`
	Template  *ClaxonTemplate `json:"template,omitempty"`
}

// ClaxonFilter 收件箱/发件箱筛选条件
type ClaxonFilter struct {
	Read           *bool
	Type           *string
	SenderLanguage *string
	Limit          int
	Offset         int
}
