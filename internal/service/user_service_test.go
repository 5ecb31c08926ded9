package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

func createTestUserService(
	userRepo *MockUserRepository,
	attemptRepo *MockAttemptRepository,
	txnRepo *MockTransactionRepository,
	emailService *MockEmailService,
) *UserService {
	return NewUserService(userRepo, attemptRepo, txnRepo, emailService, newTestActivityService())
}

func TestUserService_SetApproval_SendsEmail(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	emailService := new(MockEmailService)

	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, Email: "user@example.com", FirstName: "Иван"}, nil)
	userRepo.On("SetApproval", uint(2), true).Return(nil)
	emailService.On("SendAccountApproved", mock.Anything, "user@example.com", "Иван").Return(nil)

	svc := createTestUserService(userRepo, new(MockAttemptRepository), new(MockTransactionRepository), emailService)

	// Act
	err := svc.SetApproval(context.Background(), 100, 2, true)

	// Assert
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	emailService.AssertExpectations(t)
}

func TestUserService_SetApproval_EmailFailureDoesNotRollback(t *testing.T) {
	// Arrange: ошибка отправки письма не отменяет одобрение
	userRepo := new(MockUserRepository)
	emailService := new(MockEmailService)

	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, Email: "user@example.com"}, nil)
	userRepo.On("SetApproval", uint(2), true).Return(nil)
	emailService.On("SendAccountApproved", mock.Anything, "user@example.com", "").Return(errors.New("smtp down"))

	svc := createTestUserService(userRepo, new(MockAttemptRepository), new(MockTransactionRepository), emailService)

	// Act
	err := svc.SetApproval(context.Background(), 100, 2, true)

	// Assert
	require.NoError(t, err)
}

func TestUserService_SetApproval_RevokeSkipsEmail(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	emailService := new(MockEmailService)

	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, Email: "user@example.com"}, nil)
	userRepo.On("SetApproval", uint(2), false).Return(nil)

	svc := createTestUserService(userRepo, new(MockAttemptRepository), new(MockTransactionRepository), emailService)

	// Act
	err := svc.SetApproval(context.Background(), 100, 2, false)

	// Assert
	require.NoError(t, err)
	emailService.AssertNotCalled(t, "SendAccountApproved")
}

func TestUserService_UpdateProfile_FiltersFields(t *testing.T) {
	// Arrange: баланс и роль нельзя менять через профиль
	userRepo := new(MockUserRepository)
	userRepo.On("UpdateProfile", uint(1), map[string]interface{}{"first_name": "Пётр"}).Return(nil)
	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, FirstName: "Пётр"}, nil)

	svc := createTestUserService(userRepo, new(MockAttemptRepository), new(MockTransactionRepository), new(MockEmailService))

	// Act
	user, err := svc.UpdateProfile(1, map[string]interface{}{
		"first_name": "Пётр",
		"balance":    999999,
		"role":       "admin",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Пётр", user.FirstName)
	userRepo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_NoAllowedFields(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := createTestUserService(userRepo, new(MockAttemptRepository), new(MockTransactionRepository), new(MockEmailService))

	// Act
	_, err := svc.UpdateProfile(1, map[string]interface{}{"balance": 999999})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "UpdateProfile")
}

func TestUserService_Delete_SelfForbidden(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	svc := createTestUserService(userRepo, new(MockAttemptRepository), new(MockTransactionRepository), new(MockEmailService))

	// Act
	err := svc.Delete(100, 100)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "Delete")
}

func TestUserService_GetPlatformStats(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	attemptRepo := new(MockAttemptRepository)
	txnRepo := new(MockTransactionRepository)

	userRepo.On("Count").Return(int64(150), nil)
	attemptRepo.On("CountCompleted").Return(int64(320), nil)
	txnRepo.On("SumRewards").Return(int64(720000), nil)

	svc := createTestUserService(userRepo, attemptRepo, txnRepo, new(MockEmailService))

	// Act
	stats, err := svc.GetPlatformStats()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(150), stats.TotalUsers)
	assert.Equal(t, int64(320), stats.CompletedAttempts)
	assert.Equal(t, int64(720000), stats.TotalRewardsPaid)
}
