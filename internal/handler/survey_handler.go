package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Junior279753/geopoll-sub000/internal/handler/dto"
	"github.com/Junior279753/geopoll-sub000/internal/service"
)

// SurveyHandler обрабатывает прохождение тем: старт, ответы, завершение
type SurveyHandler struct {
	attemptService    *service.AttemptService
	themeService      *service.ThemeService
	questionsPerTheme int
}

// NewSurveyHandler создает новый обработчик опросов
func NewSurveyHandler(attemptService *service.AttemptService, themeService *service.ThemeService, questionsPerTheme int) *SurveyHandler {
	return &SurveyHandler{
		attemptService:    attemptService,
		themeService:      themeService,
		questionsPerTheme: questionsPerTheme,
	}
}

// SubmitAnswerRequest представляет запрос с ответом на вопрос
type SubmitAnswerRequest struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedOption string `json:"selected_option" binding:"required,len=1"`
}

// ListThemes возвращает активные темы со статусами для пользователя
func (h *SurveyHandler) ListThemes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	statuses, err := h.themeService.ListForUser(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"themes": dto.NewThemeResponses(statuses)})
}

// CheckEligibility сообщает, может ли пользователь начать тему
func (h *SurveyHandler) CheckEligibility(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	allowed, reason, err := h.attemptService.CanUserStartSurvey(userID, themeID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"eligible": allowed, "reason": reason})
}

// StartAttempt начинает прохождение темы
func (h *SurveyHandler) StartAttempt(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	attempt, questions, err := h.attemptService.StartAttempt(userID, themeID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewStartAttemptResponse(attempt, questions))
}

// SubmitAnswer принимает ответ на вопрос в рамках попытки
func (h *SurveyHandler) SubmitAnswer(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	attemptID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.attemptService.SubmitAnswer(userID, attemptID, req.QuestionID, req.SelectedOption)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAnswerOutcomeResponse(outcome))
}

// CompleteAttempt завершает попытку и возвращает итоговый результат
func (h *SurveyHandler) CompleteAttempt(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	attemptID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	attempt, answers, err := h.attemptService.CompleteAttempt(userID, attemptID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCompletionResponse(attempt, answers, h.questionsPerTheme))
}

// GetAttempt возвращает попытку с ответами
func (h *SurveyHandler) GetAttempt(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	attemptID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	attempt, answers, err := h.attemptService.GetAttempt(userID, attemptID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAttemptDetailResponse(attempt, answers))
}

// ListMyAttempts возвращает историю попыток пользователя
func (h *SurveyHandler) ListMyAttempts(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c, 20)

	attempts, total, err := h.attemptService.ListUserAttempts(userID, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedAttemptsResponse(attempts, total, limit, offset))
}
