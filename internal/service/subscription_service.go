package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/domain/repository"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// SubscriptionPlan описывает доступный тариф монетизации
type SubscriptionPlan struct {
	Name     string        `json:"name"`
	Amount   int64         `json:"amount"`
	Duration time.Duration `json:"-"`
}

// Доступные тарифы. Оплата списывается с внутреннего баланса.
var subscriptionPlans = map[string]SubscriptionPlan{
	"monthly": {Name: "monthly", Amount: 5000, Duration: 30 * 24 * time.Hour},
	"yearly":  {Name: "yearly", Amount: 48000, Duration: 365 * 24 * time.Hour},
}

// SubscriptionService управляет подписками монетизации аккаунта
type SubscriptionService struct {
	subRepo  repository.SubscriptionRepository
	activity *ActivityService
}

// NewSubscriptionService создает новый сервис подписок
func NewSubscriptionService(subRepo repository.SubscriptionRepository, activity *ActivityService) *SubscriptionService {
	return &SubscriptionService{
		subRepo:  subRepo,
		activity: activity,
	}
}

// Plans возвращает список доступных тарифов
func (s *SubscriptionService) Plans() []SubscriptionPlan {
	return []SubscriptionPlan{subscriptionPlans["monthly"], subscriptionPlans["yearly"]}
}

// Subscribe оформляет подписку: списание стоимости, создание подписки,
// строка журнала и включение монетизации выполняются в одной транзакции БД
func (s *SubscriptionService) Subscribe(userID uint, planName string) (*entity.Subscription, error) {
	plan, ok := subscriptionPlans[planName]
	if !ok {
		return nil, fmt.Errorf("%w: unknown subscription plan '%s'", apperrors.ErrValidation, planName)
	}

	if existing, err := s.subRepo.GetActiveByUser(userID); err == nil && !existing.IsExpired(time.Now()) {
		return nil, fmt.Errorf("%w: an active subscription already exists", apperrors.ErrConflict)
	}

	now := time.Now()
	sub := &entity.Subscription{
		UserID:    userID,
		Plan:      plan.Name,
		Amount:    plan.Amount,
		Status:    entity.SubscriptionStatusActive,
		StartsAt:  now,
		ExpiresAt: now.Add(plan.Duration),
	}
	txn := &entity.Transaction{
		UserID:    userID,
		Type:      entity.TransactionTypeSubscription,
		Amount:    -plan.Amount,
		Status:    entity.TransactionStatusCompleted,
		Reference: fmt.Sprintf("SUB-%s", uuid.NewString()),
	}

	if err := s.subRepo.CreateWithCharge(sub, txn); err != nil {
		return nil, err
	}

	log.Printf("[SubscriptionService] Пользователь %d оформил подписку '%s' до %s", userID, plan.Name, sub.ExpiresAt.Format(time.RFC3339))
	s.activity.LogAction(userID, "subscribe", fmt.Sprintf("plan=%s", plan.Name), "")
	return sub, nil
}

// GetActive возвращает активную подписку пользователя
func (s *SubscriptionService) GetActive(userID uint) (*entity.Subscription, error) {
	sub, err := s.subRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if sub.IsExpired(time.Now()) {
		if err := s.subRepo.UpdateStatus(sub.ID, entity.SubscriptionStatusExpired); err != nil {
			log.Printf("[SubscriptionService] Ошибка пометки подписки %d истёкшей: %v", sub.ID, err)
		}
		return nil, apperrors.ErrNotFound
	}
	return sub, nil
}

// ListByUser возвращает историю подписок пользователя
func (s *SubscriptionService) ListByUser(userID uint) ([]entity.Subscription, error) {
	return s.subRepo.ListByUser(userID)
}
