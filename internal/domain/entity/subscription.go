package entity

import (
	"time"
)

// Статусы подписки
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription представляет платную подписку пользователя
type Subscription struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Plan      string    `gorm:"size:50;not null" json:"plan"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	StartsAt  time.Time `gorm:"not null" json:"starts_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsExpired классифицирует подписку сравнением дат на момент чтения
func (s *Subscription) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
