package models

import "time"

// User 用户信息（主键为外部身份提供商下发的 id）
type User struct {
	ID                      string                   `json:"id" db:"id"`
	Phone                   string                   `json:"phone" db:"phone"`
	Email                   string                   `json:"email" db:"email"`
	FirstName               *string                  `json:"first_name,omitempty" db:"first_name"`
	LastName                *string                  `json:"last_name,omitempty" db:"last_name"`
	DateOfBirth             *time.Time               `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender                  *string                  `json:"gender,omitempty" db:"gender"`
	Language                string                   `json:"language" db:"language"`
	AvatarURL               *string                  `json:"avatar_url,omitempty" db:"avatar_url"`
	PrivacySettings         *PrivacySettings         `json:"privacy_settings,omitempty" db:"privacy_settings"`
	NotificationPreferences *NotificationPreferences `json:"notification_preferences,omitempty" db:"notification_preferences"`
	CreatedAt               time.Time                `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at" db:"updated_at"`
}

// Summary 返回受限投影
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
