package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        transaction.EntryType
	OccurredOn  time.Time
	Description string
	Method      transaction.Method
	CreatedAt   time.Time
}

// TransactionFilter narrows a transaction listing. All fields are optional.
type TransactionFilter struct {
	AccountID    *uuid.UUID
	CategoryID   *uuid.UUID
	Type         *transaction.EntryType
	OccurredFrom *time.Time
	OccurredTo   *time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID,
		Amount:      row.Amount,
		Type:        row.Type,
		OccurredOn:  row.OccurredOn,
		Description: row.Description,
		Method:      row.Method,
		CreatedAt:   row.CreatedAt,
	}
}
