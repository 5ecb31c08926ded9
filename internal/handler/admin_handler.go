package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Junior279753/geopoll-sub000/internal/handler/dto"
	"github.com/Junior279753/geopoll-sub000/internal/service"
)

// AdminHandler обрабатывает административные запросы: управление
// пользователями, темами, выводами средств и выгрузку отчётов
type AdminHandler struct {
	userService     *service.UserService
	themeService    *service.ThemeService
	walletService   *service.WalletService
	activityService *service.ActivityService
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(
	userService *service.UserService,
	themeService *service.ThemeService,
	walletService *service.WalletService,
	activityService *service.ActivityService,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		themeService:    themeService,
		walletService:   walletService,
		activityService: activityService,
	}
}

// ApprovalRequest представляет запрос на одобрение аккаунта
type ApprovalRequest struct {
	Approved bool `json:"approved"`
}

// ActiveRequest представляет запрос на активацию/деактивацию
type ActiveRequest struct {
	Active bool `json:"active"`
}

// ThemeRequest представляет запрос на создание или обновление темы
type ThemeRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// ProcessWithdrawalRequest представляет решение по заявке на вывод
type ProcessWithdrawalRequest struct {
	Approve bool `json:"approve"`
}

// --- Пользователи ---

// ListUsers возвращает пользователей с пагинацией
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := getPagination(c, 20)

	users, total, err := h.userService.List(limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedUsersResponse(users, total, limit, offset))
}

// SetApproval одобряет или отзывает одобрение аккаунта
func (h *AdminHandler) SetApproval(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		return
	}
	userID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetApproval(c.Request.Context(), adminID, userID, req.Approved); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "approval updated"})
}

// SetActive активирует или деактивирует аккаунт
func (h *AdminHandler) SetActive(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		return
	}
	userID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetActive(adminID, userID, req.Active); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "active flag updated"})
}

// DeleteUser удаляет пользователя
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		return
	}
	userID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(adminID, userID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// --- Темы и вопросы ---

// ListThemes возвращает все темы, включая неактивные
func (h *AdminHandler) ListThemes(c *gin.Context) {
	themes, err := h.themeService.List()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"themes": themes})
}

// CreateTheme создает новую тему
func (h *AdminHandler) CreateTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	theme, err := h.themeService.Create(req.Title, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, theme)
}

// UpdateTheme обновляет тему
func (h *AdminHandler) UpdateTheme(c *gin.Context) {
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	theme, err := h.themeService.Update(themeID, req.Title, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, theme)
}

// SetThemeActive включает или выключает тему
func (h *AdminHandler) SetThemeActive(c *gin.Context) {
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req ActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.themeService.SetActive(themeID, req.Active); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "theme active flag updated"})
}

// DeleteTheme удаляет тему с вопросами
func (h *AdminHandler) DeleteTheme(c *gin.Context) {
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.themeService.Delete(themeID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "theme deleted"})
}

// GetThemeQuestions возвращает вопросы темы с правильными ответами
func (h *AdminHandler) GetThemeQuestions(c *gin.Context) {
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.themeService.GetQuestions(themeID)
	if err != nil {
		handleError(c, err)
		return
	}

	// Администратору правильные ответы видны
	type adminQuestion struct {
		ID            uint   `json:"id"`
		Text          string `json:"text"`
		OptionA       string `json:"option_a"`
		OptionB       string `json:"option_b"`
		OptionC       string `json:"option_c"`
		OptionD       string `json:"option_d"`
		CorrectOption string `json:"correct_option"`
		OrderNum      int    `json:"order_num"`
		IsActive      bool   `json:"is_active"`
	}
	converted := make([]adminQuestion, len(questions))
	for i, q := range questions {
		converted[i] = adminQuestion{
			ID:            q.ID,
			Text:          q.Text,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectOption: q.CorrectOption,
			OrderNum:      q.OrderNum,
			IsActive:      q.IsActive,
		}
	}

	c.JSON(http.StatusOK, gin.H{"questions": converted})
}

// AddQuestion добавляет вопрос к теме
func (h *AdminHandler) AddQuestion(c *gin.Context) {
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req service.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.themeService.AddQuestion(themeID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

// AddQuestionBatch добавляет набор вопросов к теме
func (h *AdminHandler) AddQuestionBatch(c *gin.Context) {
	themeID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Questions []service.QuestionInput `json:"questions" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions, err := h.themeService.AddQuestionBatch(themeID, req.Questions)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"questions": questions})
}

// UpdateQuestion обновляет вопрос
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req service.QuestionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.themeService.UpdateQuestion(questionID, req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// DeactivateQuestion мягко удаляет вопрос
func (h *AdminHandler) DeactivateQuestion(c *gin.Context) {
	questionID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.themeService.DeactivateQuestion(questionID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "question deactivated"})
}

// --- Выводы средств и транзакции ---

// ListTransactions возвращает транзакции платформы с фильтром по статусу
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	limit, offset := getPagination(c, 20)
	status := c.Query("status")

	txns, total, err := h.walletService.ListAllTransactions(status, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedTransactionsResponse(txns, total, limit, offset))
}

// ProcessWithdrawal подтверждает или отклоняет заявку на вывод
func (h *AdminHandler) ProcessWithdrawal(c *gin.Context) {
	adminID, ok := getUserID(c)
	if !ok {
		return
	}
	txnID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	var req ProcessWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.walletService.ProcessWithdrawal(c.Request.Context(), adminID, txnID, req.Approve)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// --- Отчёты и журнал ---

// GetStats возвращает сводные показатели платформы
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.userService.GetPlatformStats()
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListActivity возвращает журнал действий
func (h *AdminHandler) ListActivity(c *gin.Context) {
	limit, offset := getPagination(c, 50)

	entries, total, err := h.activityService.List(limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total})
}

// ExportUsersXLSX выгружает пользователей в Excel
func (h *AdminHandler) ExportUsersXLSX(c *gin.Context) {
	// Выгружаем одной страницей; для текущих объёмов этого достаточно
	users, _, err := h.userService.List(100, 0)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("users_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Пользователи"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"ID", "Email", "Имя", "Фамилия", "Страна", "Одобрен", "Активен", "Монетизация", "Баланс", "Регистрация"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, u := range users {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		approved := "Нет"
		if u.AdminApproved {
			approved = "Да"
		}
		active := "Нет"
		if u.IsActive {
			active = "Да"
		}
		monetized := "Нет"
		if u.AccountMonetized {
			monetized = "Да"
		}

		row := []interface{}{
			u.ID,
			sanitizeForExcel(u.Email),
			sanitizeForExcel(u.FirstName),
			sanitizeForExcel(u.LastName),
			sanitizeForExcel(u.Country),
			approved,
			active,
			monetized,
			u.Balance,
			u.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// ExportTransactionsXLSX выгружает журнал транзакций в Excel.
// Необязательный параметр status фильтрует по статусу.
func (h *AdminHandler) ExportTransactionsXLSX(c *gin.Context) {
	status := c.Query("status")

	transactions, _, err := h.walletService.ListAllTransactions(status, 10000, 0)
	if err != nil {
		handleError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Транзакции"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"ID", "Пользователь", "Тип", "Сумма", "Статус", "Референс", "Описание", "Дата"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	for i, txn := range transactions {
		rowNum := i + 2
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			txn.ID,
			txn.UserID,
			txn.Type,
			txn.Amount,
			txn.Status,
			sanitizeForExcel(txn.Reference),
			sanitizeForExcel(txn.Description),
			txn.CreatedAt.Format("2006-01-02 15:04"),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AdminHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
