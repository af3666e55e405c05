package ledger

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// Engine owns every balance-affecting write. All other packages go through it
// so the invariant holds at each commit boundary: an account's balance equals
// its starting balance plus the signed effects of its transactions.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Effect returns the signed contribution a transaction makes to its account's
// balance: +amount for income, -amount for expense.
func Effect(t transaction.EntryType, amount decimal.Decimal) decimal.Decimal {
	if t == transaction.EntryExpense {
		return amount.Neg()
	}
	return amount
}

// PostInput describes a new transaction. AccountID and CategoryID are
// optional; a transaction without an account carries no balance effect.
type PostInput struct {
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        transaction.EntryType
	OccurredOn  time.Time
	Description string
	Method      transaction.Method
}

// Post creates a transaction and applies its effect to the linked account.
// The account row is locked before the balance is read so concurrent posts
// against the same account serialize.
func (e *Engine) Post(ctx context.Context, ownerID uuid.UUID, in PostInput) (*transaction.Transaction, error) {
	if err := validatePost(&in); err != nil {
		return nil, err
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	txn, err := e.post(ctx, tx, ownerID, &in)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return txn, nil
}

func (e *Engine) post(ctx context.Context, tx Tx, ownerID uuid.UUID, in *PostInput) (*transaction.Transaction, error) {
	if in.CategoryID != nil {
		cat, err := tx.Categories().FindByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil || cat.OwnerID != ownerID {
			return nil, notFound("category", *in.CategoryID)
		}
	}

	balance := decimal.Decimal{}
	if in.AccountID != nil {
		acct, err := tx.Accounts().FindByIDForUpdate(ctx, *in.AccountID)
		if err != nil {
			return nil, err
		}
		if acct == nil || acct.OwnerID != ownerID {
			return nil, notFound("account", *in.AccountID)
		}
		balance = acct.Balance
	}

	txn, err := tx.Transactions().Insert(ctx, &transaction.TransactionCreate{
		OwnerID:     ownerID,
		AccountID:   in.AccountID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Type:        in.Type,
		OccurredOn:  in.OccurredOn,
		Description: in.Description,
		Method:      in.Method,
	})
	if err != nil {
		return nil, err
	}

	if in.AccountID != nil {
		next := balance.Add(Effect(in.Type, in.Amount))
		if err := tx.Accounts().UpdateBalance(ctx, *in.AccountID, next); err != nil {
			return nil, err
		}
	}
	return txn, nil
}

// AmendInput carries partial edits to an existing transaction. Unset fields
// keep their current value; AccountID and CategoryID distinguish "leave as
// is", "set", and "clear".
type AmendInput struct {
	AccountID   omitnull.Val[uuid.UUID]
	CategoryID  omitnull.Val[uuid.UUID]
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[transaction.EntryType]
	OccurredOn  omit.Val[time.Time]
	Description omit.Val[string]
	Method      omit.Val[transaction.Method]
}

func (in *AmendInput) mergeInto(cur *transaction.Transaction) transaction.TransactionUpdate {
	next := transaction.TransactionUpdate{
		AccountID:   cur.AccountID,
		CategoryID:  cur.CategoryID,
		Amount:      cur.Amount,
		Type:        cur.Type,
		OccurredOn:  cur.OccurredOn,
		Description: cur.Description,
		Method:      cur.Method,
	}
	if !in.AccountID.IsUnset() {
		next.AccountID = in.AccountID.MustPtr()
	}
	if !in.CategoryID.IsUnset() {
		next.CategoryID = in.CategoryID.MustPtr()
	}
	if in.Amount.IsValue() {
		next.Amount = in.Amount.MustGet()
	}
	if in.Type.IsValue() {
		next.Type = in.Type.MustGet()
	}
	if in.OccurredOn.IsValue() {
		next.OccurredOn = in.OccurredOn.MustGet()
	}
	if in.Description.IsValue() {
		next.Description = in.Description.MustGet()
	}
	if in.Method.IsValue() {
		next.Method = in.Method.MustGet()
	}
	return next
}

// Amend edits an existing transaction, reversing its old balance effect and
// applying the new one in the same atomic unit. A no-op amend (all merged
// fields equal to the current row) touches nothing.
func (e *Engine) Amend(ctx context.Context, ownerID, id uuid.UUID, in AmendInput) (*transaction.Transaction, error) {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	txn, _, err := e.amend(ctx, tx, ownerID, id, &in)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return txn, nil
}

func (e *Engine) amend(ctx context.Context, tx Tx, ownerID, id uuid.UUID, in *AmendInput) (*transaction.Transaction, bool, error) {
	cur, err := tx.Transactions().FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if cur == nil || cur.OwnerID != ownerID {
		return nil, false, notFound("transaction", id)
	}

	next := in.mergeInto(cur)
	if err := validateUpdate(&next); err != nil {
		return nil, false, err
	}
	if !changed(cur, &next) {
		return cur, false, nil
	}

	if next.CategoryID != nil && !uuidPtrEqual(cur.CategoryID, next.CategoryID) {
		cat, err := tx.Categories().FindByID(ctx, *next.CategoryID)
		if err != nil {
			return nil, false, err
		}
		if cat == nil || cat.OwnerID != ownerID {
			return nil, false, notFound("category", *next.CategoryID)
		}
	}

	if err := e.rebalance(ctx, tx, ownerID, cur, &next); err != nil {
		return nil, false, err
	}
	if err := tx.Transactions().Update(ctx, cur.ID, &next); err != nil {
		return nil, false, err
	}

	amended := *cur
	amended.AccountID = next.AccountID
	amended.CategoryID = next.CategoryID
	amended.Amount = next.Amount
	amended.Type = next.Type
	amended.OccurredOn = next.OccurredOn
	amended.Description = next.Description
	amended.Method = next.Method
	return &amended, true, nil
}

// rebalance reverses the old effect and applies the new one. When the old and
// new account differ, both rows are involved; deltas are accumulated per
// account and the rows are locked in ascending ID order so two concurrent
// amends touching the same pair of accounts cannot deadlock.
func (e *Engine) rebalance(ctx context.Context, tx Tx, ownerID uuid.UUID, cur *transaction.Transaction, next *transaction.TransactionUpdate) error {
	deltas := map[uuid.UUID]decimal.Decimal{}
	if cur.AccountID != nil {
		deltas[*cur.AccountID] = Effect(cur.Type, cur.Amount).Neg()
	}
	if next.AccountID != nil {
		deltas[*next.AccountID] = deltas[*next.AccountID].Add(Effect(next.Type, next.Amount))
	}

	order := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare(order[i].Bytes(), order[j].Bytes()) < 0
	})

	for _, id := range order {
		acct, err := tx.Accounts().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if acct == nil || acct.OwnerID != ownerID {
			return notFound("account", id)
		}
		if deltas[id].IsZero() {
			continue
		}
		if err := tx.Accounts().UpdateBalance(ctx, id, acct.Balance.Add(deltas[id])); err != nil {
			return err
		}
	}
	return nil
}

// Retract deletes a transaction and reverses its balance effect. The
// transaction row is locked first, so a concurrent retract of the same
// transaction observes the deletion and reports not found instead of
// reversing the effect twice.
func (e *Engine) Retract(ctx context.Context, ownerID, id uuid.UUID) error {
	tx, err := e.store.Begin(ctx)
	if err != nil {
		return err
	}
	if err := e.retract(ctx, tx, ownerID, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (e *Engine) retract(ctx context.Context, tx Tx, ownerID, id uuid.UUID) error {
	cur, err := tx.Transactions().FindByIDForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil || cur.OwnerID != ownerID {
		return notFound("transaction", id)
	}

	if cur.AccountID != nil {
		acct, err := tx.Accounts().FindByIDForUpdate(ctx, *cur.AccountID)
		if err != nil {
			return err
		}
		if acct == nil {
			return notFound("account", *cur.AccountID)
		}
		next := acct.Balance.Sub(Effect(cur.Type, cur.Amount))
		if err := tx.Accounts().UpdateBalance(ctx, acct.ID, next); err != nil {
			return err
		}
	}

	deleted, err := tx.Transactions().Delete(ctx, cur.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("transaction", id)
	}
	return nil
}

func changed(cur *transaction.Transaction, next *transaction.TransactionUpdate) bool {
	return !uuidPtrEqual(cur.AccountID, next.AccountID) ||
		!uuidPtrEqual(cur.CategoryID, next.CategoryID) ||
		!cur.Amount.Equal(next.Amount) ||
		cur.Type != next.Type ||
		!cur.OccurredOn.Equal(next.OccurredOn) ||
		cur.Description != next.Description ||
		cur.Method != next.Method
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
