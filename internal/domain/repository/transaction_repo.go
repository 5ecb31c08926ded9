package repository

import (
	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// TransactionRepository определяет методы для работы с журналом транзакций
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	GetByID(id uint) (*entity.Transaction, error)
	GetByReference(reference string) (*entity.Transaction, error)
	// ListByUser возвращает транзакции пользователя с пагинацией
	ListByUser(userID uint, limit, offset int) ([]entity.Transaction, int64, error)
	// List возвращает все транзакции; пустой status означает без фильтра
	List(status string, limit, offset int) ([]entity.Transaction, int64, error)
	// Withdraw в одной транзакции БД выполняет условное списание
	// (balance >= amount) и вставляет pending-строку вывода средств.
	// Недостаток средств возвращается как ErrValidation.
	Withdraw(userID uint, amount int64, txn *entity.Transaction) error
	// UpdateStatus переводит транзакцию в новый статус
	UpdateStatus(id uint, status string) error
	// Refund в одной транзакции БД помечает вывод неуспешным и возвращает
	// списанную сумму на баланс пользователя
	Refund(txn *entity.Transaction, newStatus string) error
	// SumRewards возвращает сумму выплаченных наград
	SumRewards() (int64, error)
}

// PaymentMethodRepository определяет методы для способов вывода средств
type PaymentMethodRepository interface {
	Create(method *entity.PaymentMethod) error
	GetByID(id uint) (*entity.PaymentMethod, error)
	ListByUser(userID uint) ([]entity.PaymentMethod, error)
	Update(method *entity.PaymentMethod) error
	Delete(id uint) error
	// ClearDefault сбрасывает флаг is_default у всех способов пользователя
	ClearDefault(userID uint) error
}

// SubscriptionRepository определяет методы для подписок
type SubscriptionRepository interface {
	// CreateWithCharge в одной транзакции БД списывает стоимость подписки,
	// создаёт подписку, строку журнала и включает монетизацию аккаунта
	CreateWithCharge(sub *entity.Subscription, txn *entity.Transaction) error
	GetActiveByUser(userID uint) (*entity.Subscription, error)
	ListByUser(userID uint) ([]entity.Subscription, error)
	UpdateStatus(id uint, status string) error
}

// ActivityLogRepository определяет методы для журнала действий
type ActivityLogRepository interface {
	Create(entry *entity.ActivityLog) error
	List(limit, offset int) ([]entity.ActivityLog, int64, error)
	ListByUser(userID uint, limit, offset int) ([]entity.ActivityLog, int64, error)
}
