package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// TransactionRepo реализует repository.TransactionRepository
type TransactionRepo struct {
	db *gorm.DB
}

// NewTransactionRepo создает новый репозиторий транзакций
func NewTransactionRepo(db *gorm.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

// Create создает новую транзакцию
func (r *TransactionRepo) Create(txn *entity.Transaction) error {
	err := r.db.Create(txn).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает транзакцию по ID
func (r *TransactionRepo) GetByID(id uint) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.First(&txn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// GetByReference возвращает транзакцию по уникальной ссылке
func (r *TransactionRepo) GetByReference(reference string) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.Where("reference = ?", reference).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &txn, nil
}

// ListByUser возвращает транзакции пользователя с пагинацией
func (r *TransactionRepo) ListByUser(userID uint, limit, offset int) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	if err := r.db.Model(&entity.Transaction{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// List возвращает все транзакции; пустой status означает без фильтра
func (r *TransactionRepo) List(status string, limit, offset int) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := r.db.Model(&entity.Transaction{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// Withdraw выполняет условное списание и создание pending-строки вывода
// в одной транзакции БД. Списание проходит только если баланса хватает:
// ноль затронутых строк означает недостаток средств, и вся операция
// откатывается.
func (r *TransactionRepo) Withdraw(userID uint, amount int64, txn *entity.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.User{}).
			Where("id = ? AND balance >= ?", userID, amount).
			UpdateColumn("balance", gorm.Expr("balance - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: insufficient balance for withdrawal", apperrors.ErrValidation)
		}

		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create withdrawal transaction: %w", err)
		}
		return nil
	})
}

// UpdateStatus переводит транзакцию в новый статус
func (r *TransactionRepo) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&entity.Transaction{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Refund помечает вывод неуспешным и возвращает сумму на баланс
// в одной транзакции БД. Amount вывода отрицательный, поэтому возврат
// начисляет его модуль.
func (r *TransactionRepo) Refund(txn *entity.Transaction, newStatus string) error {
	refund := txn.Amount
	if refund < 0 {
		refund = -refund
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Transaction{}).
			Where("id = ? AND status = ?", txn.ID, entity.TransactionStatusPending).
			Update("status", newStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: transaction is not pending", apperrors.ErrConflict)
		}

		if err := tx.Model(&entity.User{}).
			Where("id = ?", txn.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", refund)).Error; err != nil {
			return fmt.Errorf("failed to refund user balance: %w", err)
		}
		return nil
	})
}

// SumRewards возвращает сумму всех выплаченных наград
func (r *TransactionRepo) SumRewards() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Transaction{}).
		Where("type = ? AND status = ?", entity.TransactionTypeReward, entity.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
