package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
	"github.com/Junior279753/geopoll-sub000/pkg/auth"
)

func createTestAuthService(userRepo *MockUserRepository) *AuthService {
	jwtService, err := auth.NewJWTService("test-secret-key", 1)
	if err != nil {
		panic(err)
	}
	return NewAuthService(userRepo, jwtService, newTestActivityService())
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Register_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "new@example.com").Return(nil, apperrors.ErrNotFound)
	userRepo.On("Create", mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@example.com" && u.Role == entity.RoleUser && !u.AdminApproved && u.IsActive
	})).Return(nil)

	svc := createTestAuthService(userRepo)

	// Act
	user, err := svc.Register("New@Example.com", "strongpass1", "Иван", "Петров", "KZ", "+77001234567")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email, "Email должен приводиться к нижнему регистру")
	assert.False(t, user.AdminApproved)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "taken@example.com").Return(&entity.User{ID: 1, Email: "taken@example.com"}, nil)

	svc := createTestAuthService(userRepo)

	// Act
	_, err := svc.Register("taken@example.com", "strongpass1", "", "", "", "")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	// Arrange
	svc := createTestAuthService(new(MockUserRepository))

	// Act
	_, err := svc.Register("a@b.com", "short", "", "", "", "")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	user := &entity.User{
		ID:            1,
		Email:         "user@example.com",
		Password:      hashPassword(t, "correct-password"),
		Role:          entity.RoleUser,
		IsActive:      true,
		AdminApproved: true,
	}
	userRepo.On("GetByEmail", "user@example.com").Return(user, nil)
	userRepo.On("UpdateLastLogin", uint(1)).Return(nil)

	svc := createTestAuthService(userRepo)

	// Act
	gotUser, token, err := svc.Login("user@example.com", "correct-password", "127.0.0.1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(1), gotUser.ID)
	assert.NotEmpty(t, token)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	user := &entity.User{
		ID:            1,
		Email:         "user@example.com",
		Password:      hashPassword(t, "correct-password"),
		IsActive:      true,
		AdminApproved: true,
	}
	userRepo.On("GetByEmail", "user@example.com").Return(user, nil)

	svc := createTestAuthService(userRepo)

	// Act
	_, _, err := svc.Login("user@example.com", "wrong-password", "")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "UpdateLastLogin")
}

func TestAuthService_Login_NotApproved(t *testing.T) {
	// Arrange: пароль верный, но аккаунт не одобрен администратором
	userRepo := new(MockUserRepository)
	user := &entity.User{
		ID:            1,
		Email:         "user@example.com",
		Password:      hashPassword(t, "correct-password"),
		IsActive:      true,
		AdminApproved: false,
	}
	userRepo.On("GetByEmail", "user@example.com").Return(user, nil)

	svc := createTestAuthService(userRepo)

	// Act
	_, _, err := svc.Login("user@example.com", "correct-password", "")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Contains(t, err.Error(), "approval")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, apperrors.ErrNotFound)

	svc := createTestAuthService(userRepo)

	// Act
	_, _, err := svc.Login("ghost@example.com", "whatever", "")

	// Assert: не раскрываем, существует ли аккаунт
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	user := &entity.User{ID: 1, Password: hashPassword(t, "old-password")}
	userRepo.On("GetByID", uint(1)).Return(user, nil)

	svc := createTestAuthService(userRepo)

	// Act
	err := svc.ChangePassword(1, "not-the-old-one", "new-password-123")

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "UpdatePassword")
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	// Arrange
	userRepo := new(MockUserRepository)
	user := &entity.User{ID: 1, Password: hashPassword(t, "old-password")}
	userRepo.On("GetByID", uint(1)).Return(user, nil)
	userRepo.On("UpdatePassword", uint(1), "new-password-123").Return(nil)

	svc := createTestAuthService(userRepo)

	// Act
	err := svc.ChangePassword(1, "old-password", "new-password-123")

	// Assert
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}
