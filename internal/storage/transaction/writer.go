package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

// Writer provides transaction-row mutations bound to one storage transaction.
type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// FindByIDForUpdate loads the transaction row under an exclusive lock,
// serializing concurrent Amend/Retract calls on the same transaction. Returns
// nil when no row exists.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new transaction row.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	q := psql.Insert(
		im.Into("transactions",
			"id", "owner_id", "account_id", "category_id", "amount", "entry_type",
			"occurred_on", "description", "method", "created_at", "updated_at"),
		im.Values(psql.Arg(
			id, create.OwnerID, create.AccountID, create.CategoryID, create.Amount,
			int16(create.Type), create.OccurredOn, create.Description,
			int16(create.Method), now, now)),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return nil, err
	}

	return &Transaction{
		ID:          id,
		OwnerID:     create.OwnerID,
		AccountID:   create.AccountID,
		CategoryID:  create.CategoryID,
		Amount:      create.Amount,
		Type:        create.Type,
		OccurredOn:  create.OccurredOn,
		Description: create.Description,
		Method:      create.Method,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update replaces the transaction's mutable fields.
func (w *Writer) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("account_id").ToArg(update.AccountID),
		um.SetCol("category_id").ToArg(update.CategoryID),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("entry_type").ToArg(int16(update.Type)),
		um.SetCol("occurred_on").ToArg(update.OccurredOn),
		um.SetCol("description").ToArg(update.Description),
		um.SetCol("method").ToArg(int16(update.Method)),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Delete removes the transaction row, reporting whether a row was deleted.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
