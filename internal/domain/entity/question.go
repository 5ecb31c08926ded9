package entity

import (
	"strings"
	"time"
)

// Допустимые буквы вариантов ответа
const AnswerLetters = "ABCD"

// Question представляет вопрос темы с четырьмя вариантами ответа
type Question struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ThemeID       uint      `gorm:"not null;index" json:"theme_id"`
	Text          string    `gorm:"size:500;not null" json:"text"`
	OptionA       string    `gorm:"size:255;not null" json:"option_a"`
	OptionB       string    `gorm:"size:255;not null" json:"option_b"`
	OptionC       string    `gorm:"size:255;not null" json:"option_c"`
	OptionD       string    `gorm:"size:255;not null" json:"option_d"`
	CorrectOption string    `gorm:"size:1;not null" json:"-"` // Буква A-D, скрыта от клиента
	OrderNum      int       `gorm:"not null;default:0" json:"order_num"`
	IsActive      bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrectAnswer проверяет ответ точным сравнением без учёта регистра
func (q *Question) IsCorrectAnswer(letter string) bool {
	return strings.EqualFold(strings.TrimSpace(letter), q.CorrectOption)
}

// NormalizeAnswerLetter приводит букву ответа к верхнему регистру.
// Возвращает пустую строку, если буква не входит в A-D.
func NormalizeAnswerLetter(letter string) string {
	normalized := strings.ToUpper(strings.TrimSpace(letter))
	if len(normalized) != 1 || !strings.Contains(AnswerLetters, normalized) {
		return ""
	}
	return normalized
}
