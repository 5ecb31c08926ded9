package repository

import (
	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками прохождения тем
type AttemptRepository interface {
	// Create вставляет попытку. Нарушение частичного уникального индекса
	// (вторая незавершённая попытка той же темы) возвращается как ErrConflict.
	Create(attempt *entity.SurveyAttempt) error
	GetByID(id uint) (*entity.SurveyAttempt, error)
	// GetOngoing возвращает незавершённую попытку пары (user, theme) или ErrNotFound
	GetOngoing(userID, themeID uint) (*entity.SurveyAttempt, error)
	// HasPassed проверяет, пройдена ли тема пользователем хотя бы один раз
	HasPassed(userID, themeID uint) (bool, error)
	// UpsertAnswer сохраняет ответ; повторный ответ на тот же вопрос перезаписывает строку
	UpsertAnswer(answer *entity.UserAnswer) error
	GetAnswers(attemptID uint) ([]entity.UserAnswer, error)
	// Finalize завершает попытку в одной транзакции БД: сохраняет попытку,
	// атомарно начисляет награду на баланс и вставляет строку журнала.
	// При txn == nil (непройденная попытка) изменяется только попытка.
	Finalize(attempt *entity.SurveyAttempt, txn *entity.Transaction) error
	// GetLeaderboard агрегирует завершённые попытки активных одобренных
	// пользователей: сортировка по суммарной награде, затем по числу проходов.
	GetLeaderboard(limit int) ([]entity.LeaderboardEntry, error)
	// ListByUser возвращает попытки пользователя с пагинацией
	ListByUser(userID uint, limit, offset int) ([]entity.SurveyAttempt, int64, error)
	CountCompleted() (int64, error)
}
