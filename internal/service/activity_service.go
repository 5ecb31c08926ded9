package service

import (
	"log"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	"github.com/Junior279753/geopoll-sub000/internal/domain/repository"
)

// ActivityService ведёт журнал действий пользователей.
// Ошибки записи в журнал не прерывают основную операцию.
type ActivityService struct {
	activityRepo repository.ActivityLogRepository
}

// NewActivityService создает новый сервис журнала действий
func NewActivityService(activityRepo repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// LogAction записывает действие пользователя в журнал
func (s *ActivityService) LogAction(userID uint, action, details, ipAddress string) {
	entry := &entity.ActivityLog{
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ipAddress,
	}
	if err := s.activityRepo.Create(entry); err != nil {
		log.Printf("[ActivityService] Ошибка записи действия '%s' для пользователя %d: %v", action, userID, err)
	}
}

// List возвращает журнал действий с пагинацией
func (s *ActivityService) List(limit, offset int) ([]entity.ActivityLog, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.activityRepo.List(limit, offset)
}

// ListByUser возвращает журнал действий пользователя
func (s *ActivityService) ListByUser(userID uint, limit, offset int) ([]entity.ActivityLog, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.activityRepo.ListByUser(userID, limit, offset)
}
