package entity

import (
	"time"
)

// SurveyAttempt представляет одно прохождение темы пользователем.
// Жизненный цикл: создана -> ответы добавляются/перезаписываются -> завершена.
// Завершение терминально: счёт заморожен, награда рассчитана.
// Незавершённая попытка единственна для пары (user, theme) — это обеспечивает
// частичный уникальный индекс в миграции, а не проверка перед вставкой.
type SurveyAttempt struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	ThemeID      uint       `gorm:"not null;index" json:"theme_id"`
	Score        int        `gorm:"not null;default:0" json:"score"`
	IsCompleted  bool       `gorm:"not null;default:false" json:"is_completed"`
	IsPassed     bool       `gorm:"not null;default:false" json:"is_passed"`
	RewardAmount int64      `gorm:"not null;default:0" json:"reward_amount"`
	StartedAt    time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt  *time.Time `gorm:"type:timestamp" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (SurveyAttempt) TableName() string {
	return "survey_attempts"
}

// SuccessRate возвращает долю правильных ответов в процентах
func (a *SurveyAttempt) SuccessRate(totalQuestions int) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	return float64(a.Score) / float64(totalQuestions) * 100
}
