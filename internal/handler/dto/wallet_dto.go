package dto

import (
	"time"

	"github.com/Junior279753/geopoll-sub000/internal/domain/entity"
)

// TransactionResponse представляет транзакцию в формате для ответа клиенту
type TransactionResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	Reference   string    `json:"reference"`
	Description string    `json:"description,omitempty"`
	AttemptID   *uint     `json:"attempt_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTransactionResponse создает DTO для транзакции
func NewTransactionResponse(t *entity.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Type:        t.Type,
		Amount:      t.Amount,
		Status:      t.Status,
		Reference:   t.Reference,
		Description: t.Description,
		AttemptID:   t.AttemptID,
		CreatedAt:   t.CreatedAt,
	}
}

// PaginatedTransactionsResponse представляет пагинированный журнал транзакций
type PaginatedTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// NewPaginatedTransactionsResponse создает DTO для журнала транзакций
func NewPaginatedTransactionsResponse(txns []entity.Transaction, total int64, limit, offset int) *PaginatedTransactionsResponse {
	converted := make([]*TransactionResponse, len(txns))
	for i := range txns {
		converted[i] = NewTransactionResponse(&txns[i])
	}
	return &PaginatedTransactionsResponse{
		Transactions: converted,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}
}

// PaymentMethodResponse представляет способ вывода средств
type PaymentMethodResponse struct {
	ID            uint   `json:"id"`
	Provider      string `json:"provider"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name,omitempty"`
	IsDefault     bool   `json:"is_default"`
}

// NewPaymentMethodResponse создает DTO для способа вывода
func NewPaymentMethodResponse(m *entity.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:            m.ID,
		Provider:      m.Provider,
		AccountNumber: m.AccountNumber,
		HolderName:    m.HolderName,
		IsDefault:     m.IsDefault,
	}
}

// NewPaymentMethodResponses создает DTO для списка способов вывода
func NewPaymentMethodResponses(methods []entity.PaymentMethod) []*PaymentMethodResponse {
	responses := make([]*PaymentMethodResponse, len(methods))
	for i := range methods {
		responses[i] = NewPaymentMethodResponse(&methods[i])
	}
	return responses
}
