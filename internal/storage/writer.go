package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// Writer binds the per-entity writers to one database transaction and
// satisfies ledger.Tx. Row locks taken through it are released on Commit or
// Rollback.
type Writer struct {
	tx          bob.Tx
	account     *account.Writer
	transaction *transaction.Writer
	category    *category.Reader
}

var _ ledger.Tx = (*Writer)(nil)

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:          tx,
		account:     account.NewWriter(tx),
		transaction: transaction.NewWriter(tx),
		category:    category.NewReader(tx),
	}
}

func (w *Writer) Accounts() ledger.AccountTx         { return w.account }
func (w *Writer) Transactions() ledger.TransactionTx { return w.transaction }
func (w *Writer) Categories() ledger.CategoryTx      { return w.category }

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
