package storage

import (
	"context"
	"database/sql"
	"log"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/notification"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

type Storage struct {
	DB  *sql.DB
	bdb bob.DB

	Accounts      account.Table
	Transactions  transaction.Table
	Categories    category.Table
	Subscriptions subscription.Table
	Budgets       budget.Table
	Notifications notification.Table
}

func NewStorage(env *config.Config) *Storage {
	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		log.Fatal(err)
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:            db,
		bdb:           bdb,
		Accounts:      account.NewReader(bdb),
		Transactions:  transaction.NewReader(bdb),
		Categories:    category.NewReader(bdb),
		Subscriptions: subscription.NewReader(bdb),
		Budgets:       budget.NewReader(bdb),
		Notifications: notification.NewReader(bdb),
	}
}

// Begin opens a database transaction wrapped as a ledger unit of work.
func (s *Storage) Begin(ctx context.Context) (ledger.Tx, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
