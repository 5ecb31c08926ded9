package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет пользователя платформы
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Email            string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password         string     `gorm:"size:100;not null" json:"-"`
	FirstName        string     `gorm:"size:100;not null;default:''" json:"first_name"`
	LastName         string     `gorm:"size:100;not null;default:''" json:"last_name"`
	Country          string     `gorm:"size:100;not null;default:''" json:"country"`
	Phone            string     `gorm:"size:30;not null;default:''" json:"phone"`
	Role             string     `gorm:"size:20;not null;default:'user'" json:"-"` // "user" или "admin"
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	AdminApproved    bool       `gorm:"not null;default:false" json:"admin_approved"`
	AccountMonetized bool       `gorm:"not null;default:false" json:"account_monetized"`
	Balance          int64      `gorm:"not null;default:0" json:"balance"` // в минимальных единицах валюты
	LastLoginAt      *time.Time `gorm:"type:timestamp" json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	// Хешируем пароль только если он:
	// 1. Не пустой
	// 2. Не является уже bcrypt-хешем (начинается с "$2a$", "$2b$" или "$2y$")
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdmin возвращает true, если пользователь является администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin проверяет, допущен ли пользователь к входу.
// Регистрация создаёт пользователя без одобрения администратора,
// до одобрения аутентификация запрещена.
func (u *User) CanLogin() bool {
	return u.IsActive && u.AdminApproved
}
