package entity

import (
	"time"
)

// ActivityLog представляет запись журнала действий.
// Журнал append-only, записи никогда не изменяются.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"size:500;not null;default:''" json:"details"`
	IPAddress string    `gorm:"size:45;not null;default:''" json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}
