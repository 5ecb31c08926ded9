package dto

import (
	"time"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// UserResponse представляет пользователя в формате для ответа клиенту
type UserResponse struct {
	ID               uint       `json:"id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Country          string     `json:"country,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Role             string     `json:"role"`
	IsActive         bool       `json:"is_active"`
	AdminApproved    bool       `json:"admin_approved"`
	AccountMonetized bool       `json:"account_monetized"`
	Balance          int64      `json:"balance"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Country:          u.Country,
		Phone:            u.Phone,
		Role:             u.Role,
		IsActive:         u.IsActive,
		AdminApproved:    u.AdminApproved,
		AccountMonetized: u.AccountMonetized,
		Balance:          u.Balance,
		LastLoginAt:      u.LastLoginAt,
		CreatedAt:        u.CreatedAt,
	}
}

// AuthResponse представляет ответ на успешный вход
type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"accessToken"`
	TokenType   string        `json:"tokenType"`
	ExpiresIn   int           `json:"expiresIn"`
}

// NewAuthResponse создает DTO для успешного входа
func NewAuthResponse(user *entity.User, token string, expiresInSec int) *AuthResponse {
	return &AuthResponse{
		User:        NewUserResponse(user),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresInSec,
	}
}

// PaginatedUsersResponse представляет пагинированный список пользователей
type PaginatedUsersResponse struct {
	Users  []*UserResponse `json:"users"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// NewPaginatedUsersResponse создает DTO для списка пользователей
func NewPaginatedUsersResponse(users []entity.User, total int64, limit, offset int) *PaginatedUsersResponse {
	converted := make([]*UserResponse, len(users))
	for i := range users {
		converted[i] = NewUserResponse(&users[i])
	}
	return &PaginatedUsersResponse{
		Users:  converted,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}
