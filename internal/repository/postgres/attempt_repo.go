package postgres

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create вставляет попытку. Частичный уникальный индекс
// uq_attempts_incomplete(user_id, theme_id) WHERE NOT is_completed
// отклоняет вторую незавершённую попытку: гонка двух одновременных стартов
// решается ограничением БД, а не проверкой перед вставкой.
func (r *AttemptRepo) Create(attempt *entity.SurveyAttempt) error {
	err := r.db.Create(attempt).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает попытку по ID
func (r *AttemptRepo) GetByID(id uint) (*entity.SurveyAttempt, error) {
	var attempt entity.SurveyAttempt
	err := r.db.First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// GetOngoing возвращает незавершённую попытку пары (user, theme)
func (r *AttemptRepo) GetOngoing(userID, themeID uint) (*entity.SurveyAttempt, error) {
	var attempt entity.SurveyAttempt
	err := r.db.Where("user_id = ? AND theme_id = ? AND is_completed = false", userID, themeID).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// HasPassed проверяет, пройдена ли тема пользователем
func (r *AttemptRepo) HasPassed(userID, themeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entity.SurveyAttempt{}).
		Where("user_id = ? AND theme_id = ? AND is_passed = true", userID, themeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertAnswer сохраняет ответ пользователя. Повторный ответ на тот же вопрос
// перезаписывает букву и корректность по уникальной паре (attempt_id, question_id).
func (r *AttemptRepo) UpsertAnswer(answer *entity.UserAnswer) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"selected_option", "is_correct", "updated_at"}),
	}).Create(answer).Error
}

// GetAnswers возвращает ответы попытки в порядке вопросов
func (r *AttemptRepo) GetAnswers(attemptID uint) ([]entity.UserAnswer, error) {
	var answers []entity.UserAnswer
	err := r.db.Where("attempt_id = ?", attemptID).
		Order("question_id ASC").
		Find(&answers).Error
	return answers, err
}

// Finalize завершает попытку в одной транзакции БД: сохранение попытки,
// атомарное начисление награды и вставка строки журнала наград. Либо
// фиксируются все три записи, либо ни одной — разрыва "попытка пройдена,
// но награда не начислена" в этой схеме не существует.
func (r *AttemptRepo) Finalize(attempt *entity.SurveyAttempt, txn *entity.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Защита от двойного завершения на уровне БД: обновляем только
		// незавершённую строку.
		result := tx.Model(&entity.SurveyAttempt{}).
			Where("id = ? AND is_completed = false", attempt.ID).
			Updates(map[string]interface{}{
				"score":         attempt.Score,
				"is_completed":  true,
				"is_passed":     attempt.IsPassed,
				"reward_amount": attempt.RewardAmount,
				"completed_at":  attempt.CompletedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: attempt already completed", apperrors.ErrConflict)
		}

		if txn == nil {
			return nil
		}

		// Атомарный инкремент вместо "прочитай баланс, потом запиши"
		if err := tx.Model(&entity.User{}).
			Where("id = ?", attempt.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", txn.Amount)).Error; err != nil {
			return fmt.Errorf("failed to credit user balance: %w", err)
		}

		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to create reward transaction: %w", err)
		}

		return nil
	})
}

// GetLeaderboard агрегирует завершённые попытки в БД вместо полного скана
// пользователей в приложении. Учитываются только активные одобренные аккаунты.
func (r *AttemptRepo) GetLeaderboard(limit int) ([]entity.LeaderboardEntry, error) {
	var entries []entity.LeaderboardEntry

	sql := `
	SELECT
	    u.id AS user_id,
	    u.first_name,
	    u.last_name,
	    u.country,
	    COUNT(a.id) AS attempts,
	    COUNT(a.id) FILTER (WHERE a.is_passed) AS passes,
	    COALESCE(SUM(a.reward_amount), 0) AS total_reward
	FROM users u
	JOIN survey_attempts a ON a.user_id = u.id AND a.is_completed = true
	WHERE u.is_active = true AND u.admin_approved = true
	GROUP BY u.id, u.first_name, u.last_name, u.country
	ORDER BY total_reward DESC, passes DESC, u.id ASC
	LIMIT ?;`

	if err := r.db.Raw(sql, limit).Scan(&entries).Error; err != nil {
		log.Printf("[AttemptRepo] Ошибка агрегирования лидерборда: %v", err)
		return nil, err
	}
	return entries, nil
}

// ListByUser возвращает попытки пользователя с пагинацией
func (r *AttemptRepo) ListByUser(userID uint, limit, offset int) ([]entity.SurveyAttempt, int64, error) {
	var attempts []entity.SurveyAttempt
	var total int64

	if err := r.db.Model(&entity.SurveyAttempt{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

// CountCompleted возвращает количество завершённых попыток
func (r *AttemptRepo) CountCompleted() (int64, error) {
	var count int64
	err := r.db.Model(&entity.SurveyAttempt{}).
		Where("is_completed = true").
		Count(&count).Error
	return count, err
}
