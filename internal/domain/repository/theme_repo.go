package repository

import (
	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// ThemeRepository определяет методы для работы с темами опросов
type ThemeRepository interface {
	Create(theme *entity.SurveyTheme) error
	GetByID(id uint) (*entity.SurveyTheme, error)
	Update(theme *entity.SurveyTheme) error
	// List возвращает темы; onlyActive ограничивает выборку активными
	List(onlyActive bool) ([]entity.SurveyTheme, error)
	SetActive(themeID uint, active bool) error
	Delete(themeID uint) error
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	// GetByThemeID возвращает вопросы темы, упорядоченные по order_num
	GetByThemeID(themeID uint, onlyActive bool) ([]entity.Question, error)
	Update(question *entity.Question) error
	// Deactivate мягко удаляет вопрос; жёсткого удаления нет
	Deactivate(questionID uint) error
	CountActive(themeID uint) (int64, error)
}
