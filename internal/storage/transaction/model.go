package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// EntryType classifies a transaction as income or expense. The stored amount
// is always a positive magnitude; the sign of its balance effect is derived
// from the entry type at application time.
type EntryType int8

const (
	EntryIncome EntryType = iota
	EntryExpense
)

func (t EntryType) String() string {
	switch t {
	case EntryIncome:
		return "income"
	case EntryExpense:
		return "expense"
	default:
		return "unknown"
	}
}

func ParseEntryType(s string) (EntryType, error) {
	switch s {
	case "income":
		return EntryIncome, nil
	case "expense":
		return EntryExpense, nil
	default:
		return 0, fmt.Errorf("unknown entry type %q", s)
	}
}

// Method tags how a transaction was paid.
type Method int8

const (
	MethodOther Method = iota
	MethodCash
	MethodCard
	MethodTransfer
)

func (m Method) String() string {
	switch m {
	case MethodCash:
		return "cash"
	case MethodCard:
		return "card"
	case MethodTransfer:
		return "transfer"
	default:
		return "other"
	}
}

func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "other":
		return MethodOther, nil
	case "cash":
		return MethodCash, nil
	case "card":
		return MethodCard, nil
	case "transfer":
		return MethodTransfer, nil
	default:
		return 0, fmt.Errorf("unknown payment method %q", s)
	}
}

// Transaction represents a transaction record. AccountID and CategoryID are
// optional; a transaction with no account is legal and carries no balance
// effect.
type Transaction struct {
	ID          uuid.UUID       `db:"id"`
	OwnerID     uuid.UUID       `db:"owner_id"`
	AccountID   *uuid.UUID      `db:"account_id"`
	CategoryID  *uuid.UUID      `db:"category_id"`
	Amount      decimal.Decimal `db:"amount"`
	Type        EntryType       `db:"entry_type"`
	OccurredOn  time.Time       `db:"occurred_on"`
	Description string          `db:"description"`
	Method      Method          `db:"method"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	OwnerID     uuid.UUID
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        EntryType
	OccurredOn  time.Time
	Description string
	Method      Method
}

// TransactionUpdate carries the full replacement field set for an existing
// transaction row.
type TransactionUpdate struct {
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        EntryType
	OccurredOn  time.Time
	Description string
	Method      Method
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	Type            *EntryType
	OccurredFrom    *time.Time
	OccurredTo      *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// Table defines the interface for read-side transaction storage operations.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	List(ctx context.Context, ownerID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error)
	SumExpenses(ctx context.Context, ownerID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
}
