package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// ThemeRepo реализует repository.ThemeRepository
type ThemeRepo struct {
	db *gorm.DB
}

// NewThemeRepo создает новый репозиторий тем
func NewThemeRepo(db *gorm.DB) *ThemeRepo {
	return &ThemeRepo{db: db}
}

// Create создает новую тему
func (r *ThemeRepo) Create(theme *entity.SurveyTheme) error {
	return r.db.Create(theme).Error
}

// GetByID возвращает тему по ID
func (r *ThemeRepo) GetByID(id uint) (*entity.SurveyTheme, error) {
	var theme entity.SurveyTheme
	err := r.db.First(&theme, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &theme, nil
}

// Update обновляет тему
func (r *ThemeRepo) Update(theme *entity.SurveyTheme) error {
	return r.db.Save(theme).Error
}

// List возвращает темы, отсортированные по ID
func (r *ThemeRepo) List(onlyActive bool) ([]entity.SurveyTheme, error) {
	var themes []entity.SurveyTheme
	query := r.db.Order("id")
	if onlyActive {
		query = query.Where("is_active = true")
	}
	err := query.Find(&themes).Error
	return themes, err
}

// SetActive включает или отключает тему
func (r *ThemeRepo) SetActive(themeID uint, active bool) error {
	result := r.db.Model(&entity.SurveyTheme{}).Where("id = ?", themeID).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет тему; вопросы каскадируются внешним ключом
func (r *ThemeRepo) Delete(themeID uint) error {
	result := r.db.Delete(&entity.SurveyTheme{}, themeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
