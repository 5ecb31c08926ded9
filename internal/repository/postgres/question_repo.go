package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch создает несколько вопросов одной вставкой
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByThemeID возвращает вопросы темы, упорядоченные по order_num
func (r *QuestionRepo) GetByThemeID(themeID uint, onlyActive bool) ([]entity.Question, error) {
	var questions []entity.Question
	query := r.db.Where("theme_id = ?", themeID).Order("order_num ASC, id ASC")
	if onlyActive {
		query = query.Where("is_active = true")
	}
	err := query.Find(&questions).Error
	return questions, err
}

// Update обновляет вопрос
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Save(question).Error
}

// Deactivate мягко удаляет вопрос
func (r *QuestionRepo) Deactivate(questionID uint) error {
	result := r.db.Model(&entity.Question{}).Where("id = ?", questionID).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountActive возвращает количество активных вопросов темы
func (r *QuestionRepo) CountActive(themeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.Question{}).
		Where("theme_id = ? AND is_active = true", themeID).
		Count(&count).Error
	return count, err
}
