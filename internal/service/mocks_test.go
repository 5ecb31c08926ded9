package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев, общие для тестов сервисов
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateProfile(userID uint, updates map[string]interface{}) error {
	args := m.Called(userID, updates)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(userID uint, newPassword string) error {
	args := m.Called(userID, newPassword)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) SetApproval(userID uint, approved bool) error {
	args := m.Called(userID, approved)
	return args.Error(0)
}

func (m *MockUserRepository) SetActive(userID uint, active bool) error {
	args := m.Called(userID, active)
	return args.Error(0)
}

func (m *MockUserRepository) SetMonetized(userID uint, monetized bool) error {
	args := m.Called(userID, monetized)
	return args.Error(0)
}

func (m *MockUserRepository) List(limit, offset int) ([]entity.User, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Delete(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockThemeRepository реализует repository.ThemeRepository
type MockThemeRepository struct {
	mock.Mock
}

func (m *MockThemeRepository) Create(theme *entity.SurveyTheme) error {
	args := m.Called(theme)
	return args.Error(0)
}

func (m *MockThemeRepository) GetByID(id uint) (*entity.SurveyTheme, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SurveyTheme), args.Error(1)
}

func (m *MockThemeRepository) Update(theme *entity.SurveyTheme) error {
	args := m.Called(theme)
	return args.Error(0)
}

func (m *MockThemeRepository) List(onlyActive bool) ([]entity.SurveyTheme, error) {
	args := m.Called(onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SurveyTheme), args.Error(1)
}

func (m *MockThemeRepository) SetActive(themeID uint, active bool) error {
	args := m.Called(themeID, active)
	return args.Error(0)
}

func (m *MockThemeRepository) Delete(themeID uint) error {
	args := m.Called(themeID)
	return args.Error(0)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(questions []entity.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByThemeID(themeID uint, onlyActive bool) ([]entity.Question, error) {
	args := m.Called(themeID, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Deactivate(questionID uint) error {
	args := m.Called(questionID)
	return args.Error(0)
}

func (m *MockQuestionRepository) CountActive(themeID uint) (int64, error) {
	args := m.Called(themeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAttemptRepository реализует repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(attempt *entity.SurveyAttempt) error {
	args := m.Called(attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(id uint) (*entity.SurveyAttempt, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SurveyAttempt), args.Error(1)
}

func (m *MockAttemptRepository) GetOngoing(userID, themeID uint) (*entity.SurveyAttempt, error) {
	args := m.Called(userID, themeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SurveyAttempt), args.Error(1)
}

func (m *MockAttemptRepository) HasPassed(userID, themeID uint) (bool, error) {
	args := m.Called(userID, themeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) UpsertAnswer(answer *entity.UserAnswer) error {
	args := m.Called(answer)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetAnswers(attemptID uint) ([]entity.UserAnswer, error) {
	args := m.Called(attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UserAnswer), args.Error(1)
}

func (m *MockAttemptRepository) Finalize(attempt *entity.SurveyAttempt, txn *entity.Transaction) error {
	args := m.Called(attempt, txn)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetLeaderboard(limit int) ([]entity.LeaderboardEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeaderboardEntry), args.Error(1)
}

func (m *MockAttemptRepository) ListByUser(userID uint, limit, offset int) ([]entity.SurveyAttempt, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.SurveyAttempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) CountCompleted() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository реализует repository.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(txn *entity.Transaction) error {
	args := m.Called(txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(id uint) (*entity.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByReference(reference string) (*entity.Transaction, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(userID uint, limit, offset int) ([]entity.Transaction, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) List(status string, limit, offset int) ([]entity.Transaction, int64, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) Withdraw(userID uint, amount int64, txn *entity.Transaction) error {
	args := m.Called(userID, amount, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockTransactionRepository) Refund(txn *entity.Transaction, newStatus string) error {
	args := m.Called(txn, newStatus)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumRewards() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentMethodRepository реализует repository.PaymentMethodRepository
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) Create(method *entity.PaymentMethod) error {
	args := m.Called(method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) GetByID(id uint) (*entity.PaymentMethod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListByUser(userID uint) ([]entity.PaymentMethod, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) Update(method *entity.PaymentMethod) error {
	args := m.Called(method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) ClearDefault(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockSubscriptionRepository реализует repository.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) CreateWithCharge(sub *entity.Subscription, txn *entity.Transaction) error {
	args := m.Called(sub, txn)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) GetActiveByUser(userID uint) (*entity.Subscription, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByUser(userID uint) ([]entity.Subscription, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

// MockActivityLogRepository реализует repository.ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Create(entry *entity.ActivityLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockActivityLogRepository) List(limit, offset int) ([]entity.ActivityLog, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.ActivityLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockActivityLogRepository) ListByUser(userID uint, limit, offset int) ([]entity.ActivityLog, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.ActivityLog), args.Get(1).(int64), args.Error(2)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

// MockEmailService реализует EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendAccountApproved(ctx context.Context, toEmail, firstName string) error {
	args := m.Called(ctx, toEmail, firstName)
	return args.Error(0)
}

func (m *MockEmailService) SendWithdrawalProcessed(ctx context.Context, toEmail string, amount int64, approved bool) error {
	args := m.Called(ctx, toEmail, amount, approved)
	return args.Error(0)
}

// newTestActivityService создает ActivityService с моком, принимающим любые записи
func newTestActivityService() *ActivityService {
	activityRepo := new(MockActivityLogRepository)
	activityRepo.On("Create", mock.AnythingOfType("*entity.ActivityLog")).Return(nil)
	return NewActivityService(activityRepo)
}
