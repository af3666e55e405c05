package account

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
	AccountTypeCredit
	AccountTypeInvestment
	AccountTypeOther
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeChecking:
		return "checking"
	case AccountTypeSavings:
		return "savings"
	case AccountTypeCredit:
		return "credit"
	case AccountTypeInvestment:
		return "investment"
	default:
		return "other"
	}
}

func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "checking":
		return AccountTypeChecking, nil
	case "savings":
		return AccountTypeSavings, nil
	case "credit":
		return AccountTypeCredit, nil
	case "investment":
		return AccountTypeInvestment, nil
	case "", "other":
		return AccountTypeOther, nil
	default:
		return 0, fmt.Errorf("unknown account type %q", s)
	}
}

// Account represents an account record. Balance is only ever written through
// the ledger engine; StartingBalance is fixed at creation and anchors the
// reconciliation identity balance == starting_balance + sum of effects.
type Account struct {
	ID              uuid.UUID       `db:"id"`
	OwnerID         uuid.UUID       `db:"owner_id"`
	Name            string          `db:"name"`
	Type            AccountType     `db:"account_type"`
	Number          string          `db:"number"`
	Balance         decimal.Decimal `db:"balance"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	CreatedAt       time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	OwnerID         uuid.UUID
	Name            string
	Type            AccountType
	Number          string
	StartingBalance decimal.Decimal
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// Table defines the interface for account storage operations.
// This abstraction allows swapping the implementation without changing callers.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter *AccountFilter) ([]*Account, error)
	SumEffects(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}
