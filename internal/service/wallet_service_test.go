package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

func createTestWalletService(
	userRepo *MockUserRepository,
	txnRepo *MockTransactionRepository,
	methodRepo *MockPaymentMethodRepository,
	emailService *MockEmailService,
) *WalletService {
	return NewWalletService(userRepo, txnRepo, methodRepo, emailService, newTestActivityService())
}

func TestWalletService_RequestWithdrawal_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	txnRepo := new(MockTransactionRepository)
	methodRepo := new(MockPaymentMethodRepository)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, AccountMonetized: true, Balance: 50000}, nil)
	methodRepo.On("GetByID", uint(3)).Return(&entity.PaymentMethod{ID: 3, UserID: 1, Provider: "kaspi", AccountNumber: "KZ123"}, nil)
	txnRepo.On("Withdraw", uint(1), int64(22500), mock.MatchedBy(func(txn *entity.Transaction) bool {
		return txn.Type == entity.TransactionTypeWithdrawal &&
			txn.Amount == -22500 &&
			txn.Status == entity.TransactionStatusPending &&
			strings.HasPrefix(txn.Reference, "WDL-")
	})).Return(nil)

	svc := createTestWalletService(userRepo, txnRepo, methodRepo, new(MockEmailService))

	// Act
	txn, err := svc.RequestWithdrawal(1, 22500, 3)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(-22500), txn.Amount)
	txnRepo.AssertExpectations(t)
}

func TestWalletService_RequestWithdrawal_NotMonetized(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	txnRepo := new(MockTransactionRepository)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, AccountMonetized: false, Balance: 50000}, nil)

	svc := createTestWalletService(userRepo, txnRepo, new(MockPaymentMethodRepository), new(MockEmailService))

	// Act
	_, err := svc.RequestWithdrawal(1, 22500, 3)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	txnRepo.AssertNotCalled(t, "Withdraw")
}

func TestWalletService_RequestWithdrawal_ForeignPaymentMethod(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	methodRepo := new(MockPaymentMethodRepository)
	txnRepo := new(MockTransactionRepository)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, AccountMonetized: true}, nil)
	methodRepo.On("GetByID", uint(3)).Return(&entity.PaymentMethod{ID: 3, UserID: 2}, nil)

	svc := createTestWalletService(userRepo, txnRepo, methodRepo, new(MockEmailService))

	// Act
	_, err := svc.RequestWithdrawal(1, 1000, 3)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	txnRepo.AssertNotCalled(t, "Withdraw")
}

func TestWalletService_RequestWithdrawal_InsufficientBalance(t *testing.T) {
	// Arrange: условное списание в репозитории вернуло ошибку валидации
	userRepo := new(MockUserRepository)
	txnRepo := new(MockTransactionRepository)
	methodRepo := new(MockPaymentMethodRepository)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, AccountMonetized: true, Balance: 100}, nil)
	methodRepo.On("GetByID", uint(3)).Return(&entity.PaymentMethod{ID: 3, UserID: 1}, nil)
	txnRepo.On("Withdraw", uint(1), int64(22500), mock.Anything).Return(apperrors.ErrValidation)

	svc := createTestWalletService(userRepo, txnRepo, methodRepo, new(MockEmailService))

	// Act
	_, err := svc.RequestWithdrawal(1, 22500, 3)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestWalletService_ProcessWithdrawal_Approve(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	txnRepo := new(MockTransactionRepository)
	emailService := new(MockEmailService)

	pending := &entity.Transaction{
		ID:     9,
		UserID: 1,
		Type:   entity.TransactionTypeWithdrawal,
		Amount: -22500,
		Status: entity.TransactionStatusPending,
	}
	txnRepo.On("GetByID", uint(9)).Return(pending, nil)
	txnRepo.On("UpdateStatus", uint(9), entity.TransactionStatusCompleted).Return(nil)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Email: "user@example.com"}, nil)
	emailService.On("SendWithdrawalProcessed", mock.Anything, "user@example.com", int64(22500), true).Return(nil)

	svc := createTestWalletService(userRepo, txnRepo, new(MockPaymentMethodRepository), emailService)

	// Act
	txn, err := svc.ProcessWithdrawal(context.Background(), 100, 9, true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, txn.Status)
	txnRepo.AssertExpectations(t)
	emailService.AssertExpectations(t)
}

func TestWalletService_ProcessWithdrawal_RefuseRefunds(t *testing.T) {
	// Arrange: отклонение возвращает средства на баланс через Refund
	userRepo := new(MockUserRepository)
	txnRepo := new(MockTransactionRepository)
	emailService := new(MockEmailService)

	pending := &entity.Transaction{
		ID:     9,
		UserID: 1,
		Type:   entity.TransactionTypeWithdrawal,
		Amount: -22500,
		Status: entity.TransactionStatusPending,
	}
	txnRepo.On("GetByID", uint(9)).Return(pending, nil)
	txnRepo.On("Refund", pending, entity.TransactionStatusFailed).Return(nil)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Email: "user@example.com"}, nil)
	emailService.On("SendWithdrawalProcessed", mock.Anything, "user@example.com", int64(22500), false).Return(nil)

	svc := createTestWalletService(userRepo, txnRepo, new(MockPaymentMethodRepository), emailService)

	// Act
	txn, err := svc.ProcessWithdrawal(context.Background(), 100, 9, false)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusFailed, txn.Status)
	txnRepo.AssertNotCalled(t, "UpdateStatus")
	txnRepo.AssertExpectations(t)
}

func TestWalletService_ProcessWithdrawal_AlreadyProcessed(t *testing.T) {
	// Arrange
	txnRepo := new(MockTransactionRepository)
	txnRepo.On("GetByID", uint(9)).Return(&entity.Transaction{
		ID:     9,
		Type:   entity.TransactionTypeWithdrawal,
		Status: entity.TransactionStatusCompleted,
	}, nil)

	svc := createTestWalletService(new(MockUserRepository), txnRepo, new(MockPaymentMethodRepository), new(MockEmailService))

	// Act
	_, err := svc.ProcessWithdrawal(context.Background(), 100, 9, true)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	txnRepo.AssertNotCalled(t, "UpdateStatus")
	txnRepo.AssertNotCalled(t, "Refund")
}

func TestWalletService_ProcessWithdrawal_NotAWithdrawal(t *testing.T) {
	// Arrange: награды не обрабатываются как выводы
	txnRepo := new(MockTransactionRepository)
	txnRepo.On("GetByID", uint(9)).Return(&entity.Transaction{
		ID:     9,
		Type:   entity.TransactionTypeReward,
		Status: entity.TransactionStatusPending,
	}, nil)

	svc := createTestWalletService(new(MockUserRepository), txnRepo, new(MockPaymentMethodRepository), new(MockEmailService))

	// Act
	_, err := svc.ProcessWithdrawal(context.Background(), 100, 9, true)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestWalletService_AddPaymentMethod_DefaultClearsOthers(t *testing.T) {
	// Arrange
	methodRepo := new(MockPaymentMethodRepository)
	methodRepo.On("ClearDefault", uint(1)).Return(nil)
	methodRepo.On("Create", mock.MatchedBy(func(m *entity.PaymentMethod) bool {
		return m.UserID == 1 && m.IsDefault
	})).Return(nil)

	svc := createTestWalletService(new(MockUserRepository), new(MockTransactionRepository), methodRepo, new(MockEmailService))

	// Act
	method, err := svc.AddPaymentMethod(1, "kaspi", "KZ123", "IVAN PETROV", true)

	// Assert
	require.NoError(t, err)
	assert.True(t, method.IsDefault)
	methodRepo.AssertExpectations(t)
}
