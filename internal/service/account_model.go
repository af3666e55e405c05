package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID              uuid.UUID
	Name            string
	Type            account.AccountType
	Number          string
	Balance         decimal.Decimal
	StartingBalance decimal.Decimal
	CreatedAt       time.Time
}

// AccountCreateInput is the input for creating a new account.
type AccountCreateInput struct {
	Name            string
	Type            account.AccountType
	Number          string
	StartingBalance decimal.Decimal
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// Reconciliation compares an account's stored balance against the balance
// implied by its transactions. Drift is zero for a consistent account.
type Reconciliation struct {
	AccountID  uuid.UUID
	Balance    decimal.Decimal
	Expected   decimal.Decimal
	Drift      decimal.Decimal
	Consistent bool
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:              row.ID,
		Name:            row.Name,
		Type:            row.Type,
		Number:          row.Number,
		Balance:         row.Balance,
		StartingBalance: row.StartingBalance,
		CreatedAt:       row.CreatedAt,
	}
}
