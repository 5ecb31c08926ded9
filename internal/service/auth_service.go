package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/domain/repository"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
	"github.com/Junior279753/geopoll-sub000/pkg/auth"
)

// AuthService отвечает за регистрацию и вход пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	activity   *ActivityService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, activity *ActivityService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		activity:   activity,
	}
}

// Register регистрирует нового пользователя. Аккаунт создаётся
// неодобренным: вход возможен только после одобрения администратором.
func (s *AuthService) Register(email, password, firstName, lastName, country, phone string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: email is already registered", apperrors.ErrConflict)
	}

	user := &entity.User{
		Email:     email,
		Password:  password, // хешируется в хуке BeforeSave
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Country:   strings.TrimSpace(country),
		Phone:     strings.TrimSpace(phone),
		Role:      entity.RoleUser,
		IsActive:  true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("[AuthService] Зарегистрирован пользователь %d (%s), ожидает одобрения", user.ID, user.Email)
	s.activity.LogAction(user.ID, "register", "", "")
	return user, nil
}

// Login проверяет учётные данные и выдаёт access-токен.
// Неодобренные и деактивированные аккаунты не могут войти.
func (s *AuthService) Login(email, password, ipAddress string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Не раскрываем, существует ли email
		return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	if !user.CanLogin() {
		if !user.IsActive {
			return nil, "", fmt.Errorf("%w: account is deactivated", apperrors.ErrForbidden)
		}
		return nil, "", fmt.Errorf("%w: account is awaiting admin approval", apperrors.ErrForbidden)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.Printf("[AuthService] Ошибка обновления времени входа пользователя %d: %v", user.ID, err)
	}

	s.activity.LogAction(user.ID, "login", "", ipAddress)
	return user, token, nil
}

// ChangePassword меняет пароль после проверки текущего
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.UpdatePassword(userID, newPassword); err != nil {
		return err
	}

	s.activity.LogAction(userID, "change_password", "", "")
	return nil
}
