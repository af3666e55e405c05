package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/ledger/ledgertest"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

func newFixture() (*ledger.Engine, *ledgertest.Store, uuid.UUID) {
	store := ledgertest.NewStore()
	owner := uuid.Must(uuid.NewV4())
	return ledger.NewEngine(store), store, owner
}

func seedAccount(store *ledgertest.Store, owner uuid.UUID, balance string) uuid.UUID {
	b := decimal.RequireFromString(balance)
	return store.AddAccount(account.Account{
		OwnerID:         owner,
		Name:            "checking",
		Balance:         b,
		StartingBalance: b,
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func postInput(accountID *uuid.UUID, amount string, typ transaction.EntryType) ledger.PostInput {
	return ledger.PostInput{
		AccountID:   accountID,
		Amount:      dec(amount),
		Type:        typ,
		OccurredOn:  time.Now(),
		Description: "groceries",
	}
}

func TestPostAppliesSignedEffect(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	_, err := engine.Post(ctx, owner, postInput(&acctID, "200", transaction.EntryIncome))
	require.NoError(t, err)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1200")))

	_, err = engine.Post(ctx, owner, postInput(&acctID, "300", transaction.EntryExpense))
	require.NoError(t, err)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("900")))
}

func TestPostWithoutAccountHasNoEffect(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(nil, "50", transaction.EntryExpense))
	require.NoError(t, err)
	assert.Nil(t, txn.AccountID)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1000")))
}

func TestPostRejectsForeignAccount(t *testing.T) {
	engine, store, owner := newFixture()
	stranger := uuid.Must(uuid.NewV4())
	acctID := seedAccount(store, stranger, "1000")
	ctx := context.Background()

	_, err := engine.Post(ctx, owner, postInput(&acctID, "10", transaction.EntryExpense))
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Equal(t, 0, store.TransactionCount())
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1000")))
}

func TestPostRejectsForeignCategory(t *testing.T) {
	engine, store, owner := newFixture()
	stranger := uuid.Must(uuid.NewV4())
	catID := store.AddCategory(category.Category{OwnerID: stranger, Name: "food"})
	ctx := context.Background()

	in := postInput(nil, "10", transaction.EntryExpense)
	in.CategoryID = &catID
	_, err := engine.Post(ctx, owner, in)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestPostValidation(t *testing.T) {
	engine, _, owner := newFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*ledger.PostInput)
		field  string
	}{
		{"zero amount", func(in *ledger.PostInput) { in.Amount = dec("0") }, "amount"},
		{"negative amount", func(in *ledger.PostInput) { in.Amount = dec("-5") }, "amount"},
		{"amount above cap", func(in *ledger.PostInput) { in.Amount = dec("1000000.01") }, "amount"},
		{"three decimal places", func(in *ledger.PostInput) { in.Amount = dec("9.999") }, "amount"},
		{"date too far back", func(in *ledger.PostInput) { in.OccurredOn = time.Now().AddDate(-11, 0, 0) }, "occurredOn"},
		{"date too far ahead", func(in *ledger.PostInput) { in.OccurredOn = time.Now().AddDate(11, 0, 0) }, "occurredOn"},
		{"zero date", func(in *ledger.PostInput) { in.OccurredOn = time.Time{} }, "occurredOn"},
		{"blank description", func(in *ledger.PostInput) { in.Description = "  " }, "description"},
		{"bad entry type", func(in *ledger.PostInput) { in.Type = transaction.EntryType(7) }, "type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := postInput(nil, "10", transaction.EntryExpense)
			tc.mutate(&in)
			_, err := engine.Post(ctx, owner, in)
			var verr *ledger.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestPostAcceptsBoundaryAmounts(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "0")
	ctx := context.Background()

	_, err := engine.Post(ctx, owner, postInput(&acctID, "0.01", transaction.EntryIncome))
	require.NoError(t, err)
	_, err = engine.Post(ctx, owner, postInput(&acctID, "1000000", transaction.EntryIncome))
	require.NoError(t, err)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1000000.01")))
}

func TestAmendReversesOldEffect(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "300", transaction.EntryExpense))
	require.NoError(t, err)
	require.True(t, store.Account(acctID).Balance.Equal(dec("700")))

	// 700 + 300 - 500 = 500
	amended, err := engine.Amend(ctx, owner, txn.ID, ledger.AmendInput{
		Amount: omit.From(dec("500")),
	})
	require.NoError(t, err)
	assert.True(t, amended.Amount.Equal(dec("500")))
	assert.True(t, store.Account(acctID).Balance.Equal(dec("500")))
}

func TestAmendTypeFlip(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "100", transaction.EntryExpense))
	require.NoError(t, err)

	_, err = engine.Amend(ctx, owner, txn.ID, ledger.AmendInput{
		Type: omit.From(transaction.EntryIncome),
	})
	require.NoError(t, err)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1100")))
}

func TestAmendNoOpLeavesRowAlone(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "100", transaction.EntryExpense))
	require.NoError(t, err)
	before := store.Transaction(txn.ID).UpdatedAt

	amended, err := engine.Amend(ctx, owner, txn.ID, ledger.AmendInput{
		Amount:      omit.From(dec("100")),
		Description: omit.From("groceries"),
	})
	require.NoError(t, err)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("900")))
	assert.Equal(t, before, store.Transaction(txn.ID).UpdatedAt)
	assert.True(t, amended.Amount.Equal(dec("100")))
}

func TestAmendMovesEffectAcrossAccounts(t *testing.T) {
	engine, store, owner := newFixture()
	fromID := seedAccount(store, owner, "1000")
	toID := seedAccount(store, owner, "500")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&fromID, "200", transaction.EntryExpense))
	require.NoError(t, err)
	require.True(t, store.Account(fromID).Balance.Equal(dec("800")))

	_, err = engine.Amend(ctx, owner, txn.ID, ledger.AmendInput{
		AccountID: omitnull.From(toID),
	})
	require.NoError(t, err)
	assert.True(t, store.Account(fromID).Balance.Equal(dec("1000")))
	assert.True(t, store.Account(toID).Balance.Equal(dec("300")))
}

func TestAmendClearsAccountLink(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "200", transaction.EntryExpense))
	require.NoError(t, err)

	amended, err := engine.Amend(ctx, owner, txn.ID, ledger.AmendInput{
		AccountID: omitnull.FromPtr[uuid.UUID](nil),
	})
	require.NoError(t, err)
	assert.Nil(t, amended.AccountID)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1000")))
}

func TestAmendValidatesMergedState(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "200", transaction.EntryExpense))
	require.NoError(t, err)

	_, err = engine.Amend(ctx, owner, txn.ID, ledger.AmendInput{
		Amount: omit.From(dec("-1")),
	})
	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("800")))
}

func TestAmendUnknownTransaction(t *testing.T) {
	engine, _, owner := newFixture()
	ctx := context.Background()

	_, err := engine.Amend(ctx, owner, uuid.Must(uuid.NewV4()), ledger.AmendInput{
		Amount: omit.From(dec("5")),
	})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestRetractReversesEffect(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "300", transaction.EntryExpense))
	require.NoError(t, err)
	require.True(t, store.Account(acctID).Balance.Equal(dec("700")))

	require.NoError(t, engine.Retract(ctx, owner, txn.ID))
	assert.Nil(t, store.Transaction(txn.ID))
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1000")))
}

func TestRetractTwiceReversesOnce(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "300", transaction.EntryExpense))
	require.NoError(t, err)

	require.NoError(t, engine.Retract(ctx, owner, txn.ID))
	err = engine.Retract(ctx, owner, txn.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.True(t, store.Account(acctID).Balance.Equal(dec("1000")))
}

func TestRetractForeignOwner(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	txn, err := engine.Post(ctx, owner, postInput(&acctID, "300", transaction.EntryExpense))
	require.NoError(t, err)

	err = engine.Retract(ctx, uuid.Must(uuid.NewV4()), txn.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.NotNil(t, store.Transaction(txn.ID))
}

func TestConcurrentPostsSerialize(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "0")
	ctx := context.Background()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := engine.Post(ctx, owner, postInput(&acctID, "100", transaction.EntryIncome))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := engine.Post(ctx, owner, postInput(&acctID, "40", transaction.EntryExpense))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	acct := store.Account(acctID)
	assert.True(t, acct.Balance.Equal(dec("1500")), "got %s", acct.Balance)
	assert.True(t, acct.Balance.Equal(acct.StartingBalance.Add(store.EffectSum(acctID))))
}

func TestBalanceMatchesEffectSumAfterMixedOps(t *testing.T) {
	engine, store, owner := newFixture()
	acctID := seedAccount(store, owner, "1000")
	ctx := context.Background()

	first, err := engine.Post(ctx, owner, postInput(&acctID, "200", transaction.EntryIncome))
	require.NoError(t, err)
	second, err := engine.Post(ctx, owner, postInput(&acctID, "300", transaction.EntryExpense))
	require.NoError(t, err)

	_, err = engine.Amend(ctx, owner, second.ID, ledger.AmendInput{Amount: omit.From(dec("500"))})
	require.NoError(t, err)
	require.NoError(t, engine.Retract(ctx, owner, first.ID))

	acct := store.Account(acctID)
	assert.True(t, acct.Balance.Equal(dec("500")), "got %s", acct.Balance)
	assert.True(t, acct.Balance.Equal(acct.StartingBalance.Add(store.EffectSum(acctID))))
}
