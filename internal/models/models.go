package models

import (
	"database/sql/driver"
	"encoding/json"
)

// 支持的消息语言
const (
	LanguageEn = "en"
	LanguageRo = "ro"
	LanguageRu = "ru"
)

// DefaultLanguage 当请求的语言代码无法识别时使用
const DefaultLanguage = LanguageRo

// PrivacySettings 用户隐私设置 (JSONB)
type PrivacySettings struct {
	ShowFullName    bool `json:"show_full_name"`
	ShowAvatar      bool `json:"show_avatar"`
	DiscoverByPlate bool `json:"discover_by_plate"`
}

// Value 实现 driver.Valuer 接口，用于存储到数据库
func (p PrivacySettings) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan 实现 sql.Scanner 接口，用于从数据库读取
func (p *PrivacySettings) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, p)
}

// NotificationPreferences 用户通知偏好 (JSONB)
type NotificationPreferences struct {
	PushEnabled  bool `json:"push_enabled"`
	SMSEnabled   bool `json:"sms_enabled"`
	EmailEnabled bool `json:"email_enabled"`
}

func (n NotificationPreferences) Value() (driver.Value, error) {
	return json.Marshal(n)
}

func (n *NotificationPreferences) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, n)
}

// UserSummary 用户受限投影（暴露给其他用户时使用，绝不包含手机号/邮箱）
type UserSummary struct {
	ID        string  `json:"id" db:"id"`
	FirstName *string `json:"first_name,omitempty" db:"first_name"`
	LastName  *string `json:"last_name,omitempty" db:"last_name"`
}
