package postgres

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
	apperrors "github.com/Junior279753/geopoll-sub000/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update обновляет информацию о пользователе
func (r *UserRepo) Update(user *entity.User) error {
	return r.db.Save(user).Error
}

// UpdateProfile обновляет профиль пользователя без изменения пароля и баланса
func (r *UserRepo) UpdateProfile(userID uint, updates map[string]interface{}) error {
	// Эти поля нельзя менять через обновление профиля
	delete(updates, "password")
	delete(updates, "balance")
	delete(updates, "role")

	updates["updated_at"] = time.Now()

	return r.db.Model(&entity.User{}).Where("id = ?", userID).Updates(updates).Error
}

// UpdatePassword безопасно обновляет пароль пользователя.
// Хеширует напрямую и пишет сырым SQL, чтобы обойти хук BeforeSave
// и исключить двойное хеширование.
func (r *UserRepo) UpdatePassword(userID uint, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[UserRepo.UpdatePassword] Ошибка при хешировании пароля: %v", err)
		return err
	}

	result := r.db.Exec(
		"UPDATE users SET password = ?, updated_at = ? WHERE id = ?",
		string(hashedPassword),
		time.Now(),
		userID,
	)
	if result.Error != nil {
		log.Printf("[UserRepo.UpdatePassword] Ошибка при обновлении пароля для ID=%d: %v", userID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLastLogin фиксирует время последнего входа
func (r *UserRepo) UpdateLastLogin(userID uint) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		UpdateColumn("last_login_at", time.Now()).
		Error
}

// SetApproval устанавливает флаг одобрения администратором
func (r *UserRepo) SetApproval(userID uint, approved bool) error {
	result := r.db.Model(&entity.User{}).Where("id = ?", userID).Update("admin_approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetActive включает или отключает учётную запись
func (r *UserRepo) SetActive(userID uint, active bool) error {
	result := r.db.Model(&entity.User{}).Where("id = ?", userID).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetMonetized устанавливает флаг монетизации аккаунта
func (r *UserRepo) SetMonetized(userID uint, monetized bool) error {
	return r.db.Model(&entity.User{}).Where("id = ?", userID).Update("account_monetized", monetized).Error
}

// List возвращает список пользователей с пагинацией и общим количеством
func (r *UserRepo) List(limit, offset int) ([]entity.User, int64, error) {
	var users []entity.User
	var total int64

	if err := r.db.Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("id").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete жёстко удаляет пользователя. Зависимые строки (попытки, ответы,
// транзакции, способы оплаты, подписки, журнал) каскадируются внешними ключами.
func (r *UserRepo) Delete(userID uint) error {
	result := r.db.Delete(&entity.User{}, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count возвращает общее количество пользователей
func (r *UserRepo) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.User{}).Count(&total).Error
	return total, err
}
