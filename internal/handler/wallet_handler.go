package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Junior279753/geopoll-sub000/internal/handler/dto"
	"github.com/Junior279753/geopoll-sub000/internal/service"
)

// WalletHandler обрабатывает запросы кошелька: баланс, транзакции,
// способы вывода, заявки на вывод и подписки
type WalletHandler struct {
	walletService       *service.WalletService
	subscriptionService *service.SubscriptionService
}

// NewWalletHandler создает новый обработчик кошелька
func NewWalletHandler(walletService *service.WalletService, subscriptionService *service.SubscriptionService) *WalletHandler {
	return &WalletHandler{
		walletService:       walletService,
		subscriptionService: subscriptionService,
	}
}

// WithdrawalRequest представляет заявку на вывод средств
type WithdrawalRequest struct {
	Amount          int64 `json:"amount" binding:"required,gt=0"`
	PaymentMethodID uint  `json:"payment_method_id" binding:"required"`
}

// AddPaymentMethodRequest представляет запрос на добавление способа вывода
type AddPaymentMethodRequest struct {
	Provider      string `json:"provider" binding:"required,max=50"`
	AccountNumber string `json:"account_number" binding:"required,max=100"`
	HolderName    string `json:"holder_name" binding:"omitempty,max=100"`
	IsDefault     bool   `json:"is_default"`
}

// SubscribeRequest представляет запрос на оформление подписки
type SubscribeRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// GetBalance возвращает текущий баланс пользователя
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	balance, err := h.walletService.GetBalance(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// ListTransactions возвращает журнал транзакций пользователя
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	limit, offset := getPagination(c, 20)

	txns, total, err := h.walletService.ListTransactions(userID, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedTransactionsResponse(txns, total, limit, offset))
}

// RequestWithdrawal создает заявку на вывод средств
func (h *WalletHandler) RequestWithdrawal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := h.walletService.RequestWithdrawal(userID, req.Amount, req.PaymentMethodID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(txn))
}

// ListPaymentMethods возвращает способы вывода пользователя
func (h *WalletHandler) ListPaymentMethods(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	methods, err := h.walletService.ListPaymentMethods(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": dto.NewPaymentMethodResponses(methods)})
}

// AddPaymentMethod добавляет способ вывода
func (h *WalletHandler) AddPaymentMethod(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := h.walletService.AddPaymentMethod(userID, req.Provider, req.AccountNumber, req.HolderName, req.IsDefault)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPaymentMethodResponse(method))
}

// DeletePaymentMethod удаляет способ вывода
func (h *WalletHandler) DeletePaymentMethod(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	methodID, ok := getUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.walletService.DeletePaymentMethod(userID, methodID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "payment method deleted"})
}

// ListPlans возвращает доступные тарифы подписки
func (h *WalletHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.subscriptionService.Plans()})
}

// Subscribe оформляет подписку монетизации
func (h *WalletHandler) Subscribe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.subscriptionService.Subscribe(userID, req.Plan)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// GetSubscription возвращает активную подписку пользователя
func (h *WalletHandler) GetSubscription(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetActive(userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
