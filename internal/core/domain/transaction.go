package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction as money in or money out.
type TransactionKind string

const (
	Expense TransactionKind = "expense"
	Income  TransactionKind = "income"
	// Transfer is reserved in the data model but is neither produced nor
	// accepted by any operation yet.
	Transfer TransactionKind = "transfer"
)

// DefaultPaymentMethod is used when a draft omits the payment method.
const DefaultPaymentMethod = "Other"

// Transaction is the sole domain entity: a flat record owned by a single user.
// Amount is signed-at-write: expenses are stored negative, income non-negative.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID), assigned by the store on creation
	OwnerID       string          `json:"ownerID"`       // Set from the active session, never user-editable
	Kind          TransactionKind `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"` // Normalized to 12:00 UTC; time-of-day is not meaningful
	PaymentMethod string          `json:"paymentMethod"`
	AuditFields
}

// NormalizeAmountSign forces the stored sign to match the kind: expense
// negative, income non-negative. Magnitude is preserved.
func (t *Transaction) NormalizeAmountSign() {
	switch t.Kind {
	case Expense:
		t.Amount = t.Amount.Abs().Neg()
	case Income:
		t.Amount = t.Amount.Abs()
	}
}

// NormalizeDate pins the transaction date to midday UTC so date-only
// comparisons cannot shift across timezone boundaries.
func (t *Transaction) NormalizeDate() {
	t.Date = NormalizeDay(t.Date)
}

// NormalizeDay returns the calendar day of ts at 12:00 UTC.
func NormalizeDay(ts time.Time) time.Time {
	utc := ts.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 12, 0, 0, 0, time.UTC)
}

// Validate checks the invariants a transaction must hold before persistence.
func (t *Transaction) Validate() error {
	if t.OwnerID == "" {
		return errors.New("owner ID is required")
	}
	switch t.Kind {
	case Expense:
		if t.Amount.IsPositive() {
			return errors.New("expense amount must not be positive")
		}
	case Income:
		if t.Amount.IsNegative() {
			return errors.New("income amount must not be negative")
		}
	case Transfer:
		return errors.New("transfer transactions are reserved and not accepted")
	default:
		return errors.New("unknown transaction kind")
	}
	if t.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// Magnitude returns the absolute value of the amount, used whenever a total is
// presented rather than stored.
func (t *Transaction) Magnitude() decimal.Decimal {
	return t.Amount.Abs()
}
