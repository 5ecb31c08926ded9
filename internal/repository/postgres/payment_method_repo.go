package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// PaymentMethodRepo реализует repository.PaymentMethodRepository
type PaymentMethodRepo struct {
	db *gorm.DB
}

// NewPaymentMethodRepo создает новый репозиторий способов вывода средств
func NewPaymentMethodRepo(db *gorm.DB) *PaymentMethodRepo {
	return &PaymentMethodRepo{db: db}
}

// Create создает новый способ вывода
func (r *PaymentMethodRepo) Create(method *entity.PaymentMethod) error {
	return r.db.Create(method).Error
}

// GetByID возвращает способ вывода по ID
func (r *PaymentMethodRepo) GetByID(id uint) (*entity.PaymentMethod, error) {
	var method entity.PaymentMethod
	err := r.db.First(&method, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// ListByUser возвращает способы вывода пользователя
func (r *PaymentMethodRepo) ListByUser(userID uint) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&methods).Error
	return methods, err
}

// Update обновляет способ вывода
func (r *PaymentMethodRepo) Update(method *entity.PaymentMethod) error {
	return r.db.Save(method).Error
}

// Delete удаляет способ вывода
func (r *PaymentMethodRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.PaymentMethod{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ClearDefault сбрасывает флаг is_default у всех способов пользователя
func (r *PaymentMethodRepo) ClearDefault(userID uint) error {
	return r.db.Model(&entity.PaymentMethod{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}
