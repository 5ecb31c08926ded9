package repository

import (
	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateProfile(userID uint, updates map[string]interface{}) error
	UpdatePassword(userID uint, newPassword string) error
	UpdateLastLogin(userID uint) error
	SetApproval(userID uint, approved bool) error
	SetActive(userID uint, active bool) error
	SetMonetized(userID uint, monetized bool) error
	// List возвращает пользователей с пагинацией и общим количеством
	List(limit, offset int) ([]entity.User, int64, error)
	// Delete жёстко удаляет пользователя; зависимые строки каскадируются в БД
	Delete(userID uint) error
	Count() (int64, error)
}
