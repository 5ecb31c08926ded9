package entity

import (
	"time"
)

// SurveyTheme представляет тему опроса — именованную категорию вопросов
type SurveyTheme struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:500;not null;default:''" json:"description"`
	IsActive    bool       `gorm:"not null;default:false;index" json:"is_active"`
	Questions   []Question `gorm:"foreignKey:ThemeID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (SurveyTheme) TableName() string {
	return "survey_themes"
}
