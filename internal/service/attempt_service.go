package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Junior279753/geopoll-sub000/internal/config"
	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/domain/repository"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

const leaderboardCacheKey = "leaderboard:top"

// AttemptService управляет жизненным циклом попыток прохождения тем:
// старт, приём ответов, завершение с начислением награды.
type AttemptService struct {
	attemptRepo  repository.AttemptRepository
	themeRepo    repository.ThemeRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	cacheRepo    repository.CacheRepository
	surveyCfg    config.SurveyConfig
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	themeRepo repository.ThemeRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	surveyCfg config.SurveyConfig,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		themeRepo:    themeRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		cacheRepo:    cacheRepo,
		surveyCfg:    surveyCfg,
	}
}

// CanUserStartSurvey проверяет право пользователя начать прохождение темы.
// Возвращает false с причиной, если аккаунт не одобрен, тема недоступна
// или тема уже пройдена (повторное прохождение запрещено навсегда).
func (s *AttemptService) CanUserStartSurvey(userID, themeID uint) (bool, string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return false, "", err
	}
	if !user.IsActive {
		return false, "account is deactivated", nil
	}
	if !user.AdminApproved {
		return false, "account is awaiting admin approval", nil
	}

	theme, err := s.themeRepo.GetByID(themeID)
	if err != nil {
		return false, "", err
	}
	if !theme.IsActive {
		return false, "survey theme is not available", nil
	}

	passed, err := s.attemptRepo.HasPassed(userID, themeID)
	if err != nil {
		return false, "", err
	}
	if passed {
		return false, "survey theme already passed", nil
	}

	return true, "", nil
}

// StartAttempt начинает прохождение темы и возвращает попытку вместе
// с вопросами (без правильных ответов — они скрыты на уровне сущности).
// Незавершённая попытка по той же теме блокирует создание новой:
// сначала нужно завершить текущую.
func (s *AttemptService) StartAttempt(userID, themeID uint) (*entity.SurveyAttempt, []entity.Question, error) {
	allowed, reason, err := s.CanUserStartSurvey(userID, themeID)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrForbidden, reason)
	}

	questions, err := s.questionRepo.GetByThemeID(themeID, true)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, fmt.Errorf("%w: theme has no active questions", apperrors.ErrValidation)
	}

	attempt := &entity.SurveyAttempt{
		UserID:    userID,
		ThemeID:   themeID,
		StartedAt: time.Now(),
	}

	err = s.attemptRepo.Create(attempt)
	if err != nil {
		// Частичный уникальный индекс отклонил вторую незавершённую попытку
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, nil, fmt.Errorf("%w: you already have an ongoing attempt for this theme", apperrors.ErrConflict)
		}
		return nil, nil, err
	}

	log.Printf("[AttemptService] Пользователь %d начал попытку %d по теме %d", userID, attempt.ID, themeID)
	return attempt, questions, nil
}

// AnswerOutcome описывает результат сохранения ответа: правильность
// и текущий прогресс, пересчитанный по сохранённым строкам.
type AnswerOutcome struct {
	IsCorrect      bool
	CurrentScore   int
	TotalAnswered  int
	TotalQuestions int
}

// SubmitAnswer принимает ответ на вопрос в рамках попытки и возвращает
// текущий счёт. Повторный ответ на тот же вопрос перезаписывает предыдущий.
func (s *AttemptService) SubmitAnswer(userID, attemptID, questionID uint, selectedOption string) (*AnswerOutcome, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, fmt.Errorf("%w: attempt belongs to another user", apperrors.ErrForbidden)
	}
	if attempt.IsCompleted {
		return nil, fmt.Errorf("%w: attempt is already completed", apperrors.ErrConflict)
	}

	letter := entity.NormalizeAnswerLetter(selectedOption)
	if letter == "" {
		return nil, fmt.Errorf("%w: selected option must be one of A-D", apperrors.ErrValidation)
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.ThemeID != attempt.ThemeID {
		return nil, fmt.Errorf("%w: question does not belong to the attempt's theme", apperrors.ErrValidation)
	}
	if !question.IsActive {
		return nil, fmt.Errorf("%w: question is no longer active", apperrors.ErrValidation)
	}

	answer := &entity.UserAnswer{
		AttemptID:      attemptID,
		QuestionID:     questionID,
		SelectedOption: letter,
		IsCorrect:      question.IsCorrectAnswer(letter),
	}

	if err := s.attemptRepo.UpsertAnswer(answer); err != nil {
		return nil, err
	}

	// Счёт считается только по сохранённым строкам, не по состоянию клиента
	answers, err := s.attemptRepo.GetAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	return &AnswerOutcome{
		IsCorrect:      answer.IsCorrect,
		CurrentScore:   entity.CountCorrect(answers),
		TotalAnswered:  len(answers),
		TotalQuestions: s.surveyCfg.QuestionsPerTheme,
	}, nil
}

// CompleteAttempt завершает попытку: считает итоговый счёт, фиксирует
// результат и при идеальном прохождении начисляет награду. Сохранение
// попытки, начисление на баланс и строка журнала выполняются в одной
// транзакции БД внутри репозитория. Возвращает попытку и разбор ответов.
func (s *AttemptService) CompleteAttempt(userID, attemptID uint) (*entity.SurveyAttempt, []entity.UserAnswer, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, nil, err
	}
	if attempt.UserID != userID {
		return nil, nil, fmt.Errorf("%w: attempt belongs to another user", apperrors.ErrForbidden)
	}
	if attempt.IsCompleted {
		return nil, nil, fmt.Errorf("%w: attempt is already completed", apperrors.ErrConflict)
	}

	answers, err := s.attemptRepo.GetAnswers(attemptID)
	if err != nil {
		return nil, nil, err
	}
	if len(answers) != s.surveyCfg.QuestionsPerTheme {
		return nil, nil, fmt.Errorf("%w: %d of %d questions answered",
			apperrors.ErrValidation, len(answers), s.surveyCfg.QuestionsPerTheme)
	}

	now := time.Now()
	attempt.Score = entity.CountCorrect(answers)
	attempt.IsCompleted = true
	attempt.IsPassed = attempt.Score == s.surveyCfg.PassScore
	attempt.CompletedAt = &now

	var txn *entity.Transaction
	if attempt.IsPassed {
		attempt.RewardAmount = s.surveyCfg.RewardAmount
		txn = &entity.Transaction{
			UserID:      attempt.UserID,
			Type:        entity.TransactionTypeReward,
			Amount:      s.surveyCfg.RewardAmount,
			Status:      entity.TransactionStatusCompleted,
			Reference:   fmt.Sprintf("RWD-%s", uuid.NewString()),
			Description: fmt.Sprintf("Survey reward for theme #%d", attempt.ThemeID),
			AttemptID:   &attempt.ID,
		}
	}

	if err := s.attemptRepo.Finalize(attempt, txn); err != nil {
		return nil, nil, err
	}

	if attempt.IsPassed {
		log.Printf("[AttemptService] Попытка %d пройдена: счёт %d/%d, награда %d начислена пользователю %d",
			attempt.ID, attempt.Score, s.surveyCfg.QuestionsPerTheme, attempt.RewardAmount, attempt.UserID)
		s.invalidateLeaderboard()
	} else {
		log.Printf("[AttemptService] Попытка %d завершена без награды: счёт %d/%d",
			attempt.ID, attempt.Score, s.surveyCfg.QuestionsPerTheme)
	}

	return attempt, answers, nil
}

// GetAttempt возвращает попытку с ответами, проверяя владельца
func (s *AttemptService) GetAttempt(userID, attemptID uint) (*entity.SurveyAttempt, []entity.UserAnswer, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, nil, err
	}
	if attempt.UserID != userID {
		return nil, nil, fmt.Errorf("%w: attempt belongs to another user", apperrors.ErrForbidden)
	}

	answers, err := s.attemptRepo.GetAnswers(attemptID)
	if err != nil {
		return nil, nil, err
	}
	return attempt, answers, nil
}

// ListUserAttempts возвращает историю попыток пользователя
func (s *AttemptService) ListUserAttempts(userID uint, limit, offset int) ([]entity.SurveyAttempt, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.attemptRepo.ListByUser(userID, limit, offset)
}

// GetLeaderboard возвращает таблицу лидеров. Результат кешируется в Redis,
// кеш сбрасывается при каждом пройденном опросе.
func (s *AttemptService) GetLeaderboard(limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("%s:%d", leaderboardCacheKey, limit)
	var cached []entity.LeaderboardEntry
	if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
		return cached, nil
	}

	entries, err := s.attemptRepo.GetLeaderboard(limit)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.surveyCfg.LeaderboardCacheTTLSec) * time.Second
	if ttl > 0 {
		if err := s.cacheRepo.SetJSON(cacheKey, entries, ttl); err != nil {
			log.Printf("[AttemptService] Ошибка кеширования лидерборда: %v", err)
		}
	}

	return entries, nil
}

func (s *AttemptService) invalidateLeaderboard() {
	// Ключи зависят от limit; сбрасываем типовые размеры страницы
	for _, limit := range []int{10, 20, 50, 100} {
		key := fmt.Sprintf("%s:%d", leaderboardCacheKey, limit)
		if err := s.cacheRepo.Delete(key); err != nil {
			log.Printf("[AttemptService] Ошибка сброса кеша лидерборда (%s): %v", key, err)
		}
	}
}
