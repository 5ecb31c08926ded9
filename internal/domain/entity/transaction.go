package entity

import (
	"time"
)

// Типы транзакций
const (
	TransactionTypeReward       = "reward"
	TransactionTypeWithdrawal   = "withdrawal"
	TransactionTypeSubscription = "subscription"
)

// Статусы транзакций
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"
)

// Transaction представляет запись в журнале движения средств.
// Журнал append-only: после создания меняется только статус.
type Transaction struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Type            string    `gorm:"size:20;not null;index" json:"type"`
	Amount          int64     `gorm:"not null" json:"amount"` // со знаком: награды положительные, списания отрицательные
	Status          string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Reference       string    `gorm:"size:64;not null;uniqueIndex" json:"reference"`
	Description     string    `gorm:"size:255;not null;default:''" json:"description"`
	AttemptID       *uint     `gorm:"index" json:"attempt_id,omitempty"`
	PaymentMethodID *uint     `json:"payment_method_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Transaction) TableName() string {
	return "transactions"
}

// IsPending проверяет, ожидает ли транзакция обработки
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}
