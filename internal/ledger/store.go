package ledger

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// Store opens atomic units of work against the engine's backing storage.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic unit of ledger work. Every balance mutation happens inside
// exactly one Tx: either the transaction-row change and the balance update
// both commit, or neither does.
type Tx interface {
	Accounts() AccountTx
	Transactions() TransactionTx
	Categories() CategoryTx
	Commit() error
	Rollback() error
}

// AccountTx exposes balance mutation under a held row lock.
// FindByIDForUpdate must block concurrent callers on the same account until
// the surrounding Tx finishes; it returns nil when the account does not exist.
type AccountTx interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}

// TransactionTx exposes transaction-row mutation. FindByIDForUpdate locks the
// row so concurrent Amend/Retract calls on the same transaction serialize; it
// returns nil when the row does not exist.
type TransactionTx interface {
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update *transaction.TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CategoryTx is read-only: categories classify transactions but never carry a
// balance effect.
type CategoryTx interface {
	FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
}
