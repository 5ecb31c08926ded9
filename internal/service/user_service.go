package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/domain/repository"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// PlatformStats агрегирует показатели платформы для панели администратора
type PlatformStats struct {
	TotalUsers        int64 `json:"total_users"`
	CompletedAttempts int64 `json:"completed_attempts"`
	TotalRewardsPaid  int64 `json:"total_rewards_paid"`
}

// UserService управляет профилями пользователей и административными операциями
type UserService struct {
	userRepo     repository.UserRepository
	attemptRepo  repository.AttemptRepository
	txnRepo      repository.TransactionRepository
	emailService EmailService
	activity     *ActivityService
}

// NewUserService создает новый сервис пользователей
func NewUserService(
	userRepo repository.UserRepository,
	attemptRepo repository.AttemptRepository,
	txnRepo repository.TransactionRepository,
	emailService EmailService,
	activity *ActivityService,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		attemptRepo:  attemptRepo,
		txnRepo:      txnRepo,
		emailService: emailService,
		activity:     activity,
	}
}

// GetByID возвращает пользователя по ID
func (s *UserService) GetByID(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile обновляет разрешённые поля профиля.
// Email, пароль, баланс и роль через профиль не меняются.
func (s *UserService) UpdateProfile(userID uint, updates map[string]interface{}) (*entity.User, error) {
	allowed := map[string]bool{
		"first_name": true,
		"last_name":  true,
		"country":    true,
		"phone":      true,
	}
	filtered := make(map[string]interface{})
	for key, value := range updates {
		if allowed[key] {
			filtered[key] = value
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields provided", apperrors.ErrValidation)
	}

	if err := s.userRepo.UpdateProfile(userID, filtered); err != nil {
		return nil, err
	}

	s.activity.LogAction(userID, "update_profile", "", "")
	return s.userRepo.GetByID(userID)
}

// List возвращает пользователей с пагинацией (для администратора)
func (s *UserService) List(limit, offset int) ([]entity.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.userRepo.List(limit, offset)
}

// SetApproval одобряет или отзывает одобрение аккаунта.
// При одобрении пользователю отправляется письмо; ошибка отправки
// не откатывает одобрение.
func (s *UserService) SetApproval(ctx context.Context, adminID, userID uint, approved bool) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.SetApproval(userID, approved); err != nil {
		return err
	}

	if approved {
		if err := s.emailService.SendAccountApproved(ctx, user.Email, user.FirstName); err != nil {
			log.Printf("[UserService] Ошибка отправки письма об одобрении пользователю %d: %v", userID, err)
		}
	}

	s.activity.LogAction(adminID, "set_approval", fmt.Sprintf("user=%d approved=%t", userID, approved), "")
	log.Printf("[UserService] Администратор %d изменил одобрение пользователя %d: %t", adminID, userID, approved)
	return nil
}

// SetActive активирует или деактивирует аккаунт
func (s *UserService) SetActive(adminID, userID uint, active bool) error {
	if err := s.userRepo.SetActive(userID, active); err != nil {
		return err
	}
	s.activity.LogAction(adminID, "set_active", fmt.Sprintf("user=%d active=%t", userID, active), "")
	return nil
}

// Delete удаляет пользователя. Администратор не может удалить сам себя.
func (s *UserService) Delete(adminID, userID uint) error {
	if adminID == userID {
		return fmt.Errorf("%w: cannot delete own account", apperrors.ErrValidation)
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	s.activity.LogAction(adminID, "delete_user", fmt.Sprintf("user=%d", userID), "")
	return nil
}

// GetPlatformStats возвращает сводные показатели платформы
func (s *UserService) GetPlatformStats() (*PlatformStats, error) {
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.CountCompleted()
	if err != nil {
		return nil, err
	}
	rewards, err := s.txnRepo.SumRewards()
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalUsers:        users,
		CompletedAttempts: attempts,
		TotalRewardsPaid:  rewards,
	}, nil
}
