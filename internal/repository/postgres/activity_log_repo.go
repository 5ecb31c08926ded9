package postgres

import (
	"gorm.io/gorm"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// ActivityLogRepo реализует repository.ActivityLogRepository
type ActivityLogRepo struct {
	db *gorm.DB
}

// NewActivityLogRepo создает новый репозиторий журнала действий
func NewActivityLogRepo(db *gorm.DB) *ActivityLogRepo {
	return &ActivityLogRepo{db: db}
}

// Create добавляет запись в журнал
func (r *ActivityLogRepo) Create(entry *entity.ActivityLog) error {
	return r.db.Create(entry).Error
}

// List возвращает записи журнала с пагинацией, новые первыми
func (r *ActivityLogRepo) List(limit, offset int) ([]entity.ActivityLog, int64, error) {
	var entries []entity.ActivityLog
	var total int64

	if err := r.db.Model(&entity.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListByUser возвращает записи журнала пользователя с пагинацией
func (r *ActivityLogRepo) ListByUser(userID uint, limit, offset int) ([]entity.ActivityLog, int64, error) {
	var entries []entity.ActivityLog
	var total int64

	if err := r.db.Model(&entity.ActivityLog{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
