package dto

import (
	"github.com/shopspring/decimal"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// CreateTransactionRequest is a draft: a transaction before the store assigns
// an ID and before the session supplies the owner.
type CreateTransactionRequest struct {
	Kind          string          `json:"kind" binding:"required,txnkind"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	PaymentMethod string          `json:"paymentMethod"`
}

// UpdateTransactionRequest carries a full replacement record; there are no
// partial-field patches.
type UpdateTransactionRequest struct {
	Kind          string          `json:"kind" binding:"required,txnkind"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	PaymentMethod string          `json:"paymentMethod"`
}

// ListTransactionsParams is the view-state of the transaction list screen,
// passed as query parameters.
type ListTransactionsParams struct {
	Search    string `form:"search"`
	Type      string `form:"type,default=all" binding:"omitempty,oneof=all expense income"`
	SortField string `form:"sortField,default=date" binding:"omitempty,oneof=date description category amount"`
	SortOrder string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

// ViewOptions converts the bound query params into domain view options.
func (p ListTransactionsParams) ViewOptions() domain.ViewOptions {
	return domain.ViewOptions{
		Search:     p.Search,
		TypeFilter: domain.TypeFilter(p.Type),
		SortField:  domain.SortField(p.SortField),
		SortOrder:  domain.SortOrder(p.SortOrder),
	}
}

// TransactionResponse is the wire representation of a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"paymentMethod"`
}

// ListTransactionsResponse wraps a derived list view together with the cache
// condition the UI renders directly.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Initializing bool                  `json:"initializing,omitempty"`
	Error        string                `json:"error,omitempty"`
}

// ToTransactionResponse converts a domain transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date.Format("2006-01-02"),
		PaymentMethod: t.PaymentMethod,
	}
}

// ToListTransactionsResponse converts a slice of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: out}
}
