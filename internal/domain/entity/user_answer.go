package entity

import (
	"time"
)

// UserAnswer представляет ответ пользователя на вопрос в рамках попытки.
// Пара (attempt_id, question_id) уникальна: повторный ответ перезаписывает
// предыдущий — это осознанное поведение, а не побочный эффект.
type UserAnswer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AttemptID      uint      `gorm:"not null;index;uniqueIndex:idx_attempt_question" json:"attempt_id"`
	QuestionID     uint      `gorm:"not null;uniqueIndex:idx_attempt_question" json:"question_id"`
	SelectedOption string    `gorm:"size:1;not null" json:"selected_option"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (UserAnswer) TableName() string {
	return "user_answers"
}

// CountCorrect подсчитывает количество правильных ответов в наборе
func CountCorrect(answers []UserAnswer) int {
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	return correct
}
