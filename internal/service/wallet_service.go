package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/domain/repository"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// WalletService управляет балансом, способами оплаты и выводом средств
type WalletService struct {
	userRepo     repository.UserRepository
	txnRepo      repository.TransactionRepository
	methodRepo   repository.PaymentMethodRepository
	emailService EmailService
	activity     *ActivityService
}

// NewWalletService создает новый сервис кошелька
func NewWalletService(
	userRepo repository.UserRepository,
	txnRepo repository.TransactionRepository,
	methodRepo repository.PaymentMethodRepository,
	emailService EmailService,
	activity *ActivityService,
) *WalletService {
	return &WalletService{
		userRepo:     userRepo,
		txnRepo:      txnRepo,
		methodRepo:   methodRepo,
		emailService: emailService,
		activity:     activity,
	}
}

// GetBalance возвращает текущий баланс пользователя
func (s *WalletService) GetBalance(userID uint) (int64, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}

// ListTransactions возвращает транзакции пользователя с пагинацией
func (s *WalletService) ListTransactions(userID uint, limit, offset int) ([]entity.Transaction, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.txnRepo.ListByUser(userID, limit, offset)
}

// ListAllTransactions возвращает транзакции по всей платформе (для администратора)
func (s *WalletService) ListAllTransactions(status string, limit, offset int) ([]entity.Transaction, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.txnRepo.List(status, limit, offset)
}

// RequestWithdrawal создает заявку на вывод средств. Списание с баланса
// и вставка pending-строки выполняются в одной транзакции БД: баланс
// не может уйти в минус даже при параллельных заявках.
func (s *WalletService) RequestWithdrawal(userID uint, amount int64, paymentMethodID uint) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.AccountMonetized {
		return nil, fmt.Errorf("%w: account monetization is required for withdrawals", apperrors.ErrForbidden)
	}

	method, err := s.methodRepo.GetByID(paymentMethodID)
	if err != nil {
		return nil, err
	}
	if method.UserID != userID {
		return nil, fmt.Errorf("%w: payment method belongs to another user", apperrors.ErrForbidden)
	}

	txn := &entity.Transaction{
		UserID:          userID,
		Type:            entity.TransactionTypeWithdrawal,
		Amount:          -amount,
		Status:          entity.TransactionStatusPending,
		Reference:       fmt.Sprintf("WDL-%s", uuid.NewString()),
		Description:     fmt.Sprintf("Withdrawal to %s (%s)", method.Provider, method.AccountNumber),
		PaymentMethodID: &method.ID,
	}

	if err := s.txnRepo.Withdraw(userID, amount, txn); err != nil {
		return nil, err
	}

	log.Printf("[WalletService] Пользователь %d запросил вывод %d (транзакция %d)", userID, amount, txn.ID)
	s.activity.LogAction(userID, "request_withdrawal", fmt.Sprintf("amount=%d txn=%d", amount, txn.ID), "")
	return txn, nil
}

// ProcessWithdrawal обрабатывает заявку на вывод: подтверждает выплату
// или отклоняет её с возвратом средств на баланс. Уведомление по почте
// не откатывает операцию при ошибке отправки.
func (s *WalletService) ProcessWithdrawal(ctx context.Context, adminID, txnID uint, approve bool) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(txnID)
	if err != nil {
		return nil, err
	}
	if txn.Type != entity.TransactionTypeWithdrawal {
		return nil, fmt.Errorf("%w: transaction is not a withdrawal", apperrors.ErrValidation)
	}
	if !txn.IsPending() {
		return nil, fmt.Errorf("%w: withdrawal has already been processed", apperrors.ErrConflict)
	}

	if approve {
		if err := s.txnRepo.UpdateStatus(txnID, entity.TransactionStatusCompleted); err != nil {
			return nil, err
		}
		txn.Status = entity.TransactionStatusCompleted
	} else {
		if err := s.txnRepo.Refund(txn, entity.TransactionStatusFailed); err != nil {
			return nil, err
		}
		txn.Status = entity.TransactionStatusFailed
	}

	if user, err := s.userRepo.GetByID(txn.UserID); err == nil {
		amount := txn.Amount
		if amount < 0 {
			amount = -amount
		}
		if err := s.emailService.SendWithdrawalProcessed(ctx, user.Email, amount, approve); err != nil {
			log.Printf("[WalletService] Ошибка отправки уведомления о выводе пользователю %d: %v", txn.UserID, err)
		}
	}

	s.activity.LogAction(adminID, "process_withdrawal", fmt.Sprintf("txn=%d approved=%t", txnID, approve), "")
	log.Printf("[WalletService] Администратор %d обработал вывод %d: approved=%t", adminID, txnID, approve)
	return txn, nil
}

// AddPaymentMethod добавляет способ вывода средств
func (s *WalletService) AddPaymentMethod(userID uint, provider, accountNumber, holderName string, isDefault bool) (*entity.PaymentMethod, error) {
	if provider == "" || accountNumber == "" {
		return nil, fmt.Errorf("%w: provider and account number are required", apperrors.ErrValidation)
	}

	if isDefault {
		if err := s.methodRepo.ClearDefault(userID); err != nil {
			return nil, err
		}
	}

	method := &entity.PaymentMethod{
		UserID:        userID,
		Provider:      provider,
		AccountNumber: accountNumber,
		HolderName:    holderName,
		IsDefault:     isDefault,
	}
	if err := s.methodRepo.Create(method); err != nil {
		return nil, err
	}
	return method, nil
}

// ListPaymentMethods возвращает способы вывода пользователя
func (s *WalletService) ListPaymentMethods(userID uint) ([]entity.PaymentMethod, error) {
	return s.methodRepo.ListByUser(userID)
}

// DeletePaymentMethod удаляет способ вывода после проверки владельца
func (s *WalletService) DeletePaymentMethod(userID, methodID uint) error {
	method, err := s.methodRepo.GetByID(methodID)
	if err != nil {
		return err
	}
	if method.UserID != userID {
		return fmt.Errorf("%w: payment method belongs to another user", apperrors.ErrForbidden)
	}
	return s.methodRepo.Delete(methodID)
}
