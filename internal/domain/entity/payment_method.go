package entity

import (
	"time"
)

// PaymentMethod представляет способ вывода средств пользователя
type PaymentMethod struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Provider      string    `gorm:"size:50;not null" json:"provider"` // mobile_money, bank_transfer и т.д.
	AccountNumber string    `gorm:"size:100;not null" json:"account_number"`
	HolderName    string    `gorm:"size:100;not null" json:"holder_name"`
	IsDefault     bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
