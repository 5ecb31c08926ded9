package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// SubscriptionRepo реализует repository.SubscriptionRepository
type SubscriptionRepo struct {
	db *gorm.DB
}

// NewSubscriptionRepo создает новый репозиторий подписок
func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

// CreateWithCharge оформляет подписку в одной транзакции БД:
// условное списание стоимости, создание подписки, строка журнала
// и включение монетизации аккаунта.
func (r *SubscriptionRepo) CreateWithCharge(sub *entity.Subscription, txn *entity.Transaction) error {
	charge := sub.Amount
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.User{}).
			Where("id = ? AND balance >= ?", sub.UserID, charge).
			UpdateColumn("balance", gorm.Expr("balance - ?", charge))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: insufficient balance for subscription", apperrors.ErrValidation)
		}

		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		txn.Description = fmt.Sprintf("Subscription %s #%d", sub.Plan, sub.ID)
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create subscription transaction: %w", err)
		}

		return tx.Model(&entity.User{}).
			Where("id = ?", sub.UserID).
			Update("account_monetized", true).Error
	})
}

// GetActiveByUser возвращает действующую подписку пользователя
func (r *SubscriptionRepo) GetActiveByUser(userID uint) (*entity.Subscription, error) {
	var sub entity.Subscription
	err := r.db.Where("user_id = ? AND status = ? AND expires_at > NOW()", userID, entity.SubscriptionStatusActive).
		Order("expires_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// ListByUser возвращает все подписки пользователя
func (r *SubscriptionRepo) ListByUser(userID uint) ([]entity.Subscription, error) {
	var subs []entity.Subscription
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}

// UpdateStatus переводит подписку в новый статус
func (r *SubscriptionRepo) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&entity.Subscription{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
