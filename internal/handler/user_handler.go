package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Junior279753/geopoll-sub000/internal/handler/dto"
	"github.com/Junior279753/geopoll-sub000/internal/service"
)

// UserHandler обрабатывает запросы профиля и публичные данные
type UserHandler struct {
	userService    *service.UserService
	attemptService *service.AttemptService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService, attemptService *service.AttemptService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		attemptService: attemptService,
	}
}

// UpdateProfileRequest представляет запрос на обновление профиля
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Country   *string `json:"country" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
}

// GetMe возвращает профиль текущего пользователя
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe обновляет профиль текущего пользователя
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	user, err := h.userService.UpdateProfile(userID, updates)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// GetLeaderboard возвращает таблицу лидеров
func (h *UserHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	entries, err := h.attemptService.GetLeaderboard(limit)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
