package actions

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/ledger/ledgertest"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

func billingFixture(t *testing.T) (*Deps, *ledgertest.Store, *subscription.MockTable, uuid.UUID, uuid.UUID) {
	t.Helper()
	store := ledgertest.NewStore()
	owner := uuid.Must(uuid.NewV4())
	balance := decimal.RequireFromString("500")
	acctID := store.AddAccount(account.Account{
		OwnerID:         owner,
		Name:            "checking",
		Balance:         balance,
		StartingBalance: balance,
	})
	subs := &subscription.MockTable{}
	deps := &Deps{Engine: ledger.NewEngine(store), Subscriptions: subs}
	return deps, store, subs, owner, acctID
}

func TestBillSubscriptionPostsAndAdvances(t *testing.T) {
	deps, store, subs, owner, acctID := billingFixture(t)

	due := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	sub := &subscription.Subscription{
		ID:            uuid.Must(uuid.NewV4()),
		OwnerID:       owner,
		AccountID:     &acctID,
		Name:          "music streaming",
		Amount:        decimal.RequireFromString("9.99"),
		Frequency:     subscription.FrequencyMonthly,
		BillingDay:    1,
		NextBillingOn: due,
		Active:        true,
	}
	subs.On("FindByID", mock.Anything, sub.ID).Return(sub, nil)
	subs.On("UpdateSchedule", mock.Anything, sub.ID,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), due).Return(nil)

	action := &BillSubscription{SubscriptionID: sub.ID, AsOf: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, action.Perform(context.Background(), deps))

	assert.True(t, store.Account(acctID).Balance.Equal(decimal.RequireFromString("490.01")))
	assert.Equal(t, 1, store.TransactionCount())
	subs.AssertExpectations(t)
}

func TestBillSubscriptionCatchesUpMissedCycles(t *testing.T) {
	deps, store, subs, owner, acctID := billingFixture(t)

	sub := &subscription.Subscription{
		ID:            uuid.Must(uuid.NewV4()),
		OwnerID:       owner,
		AccountID:     &acctID,
		Name:          "gym",
		Amount:        decimal.RequireFromString("30"),
		Frequency:     subscription.FrequencyMonthly,
		BillingDay:    1,
		NextBillingOn: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Active:        true,
	}
	subs.On("FindByID", mock.Anything, sub.ID).Return(sub, nil)
	subs.On("UpdateSchedule", mock.Anything, sub.ID, mock.Anything, mock.Anything).Return(nil)

	action := &BillSubscription{SubscriptionID: sub.ID, AsOf: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, action.Perform(context.Background(), deps))

	// June, July and August were all due.
	assert.Equal(t, 3, store.TransactionCount())
	assert.True(t, store.Account(acctID).Balance.Equal(decimal.RequireFromString("410")))
	assert.True(t, sub.NextBillingOn.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBillSubscriptionSkipsInactive(t *testing.T) {
	deps, store, subs, owner, acctID := billingFixture(t)

	sub := &subscription.Subscription{
		ID:            uuid.Must(uuid.NewV4()),
		OwnerID:       owner,
		AccountID:     &acctID,
		Name:          "paused",
		Amount:        decimal.RequireFromString("30"),
		Frequency:     subscription.FrequencyMonthly,
		BillingDay:    1,
		NextBillingOn: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Active:        false,
	}
	subs.On("FindByID", mock.Anything, sub.ID).Return(sub, nil)

	action := &BillSubscription{SubscriptionID: sub.ID, AsOf: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, action.Perform(context.Background(), deps))
	assert.Equal(t, 0, store.TransactionCount())
}

func TestBillSubscriptionVanishedRowIsANoOp(t *testing.T) {
	deps, store, subs, _, _ := billingFixture(t)

	id := uuid.Must(uuid.NewV4())
	subs.On("FindByID", mock.Anything, id).Return(nil, nil)

	action := &BillSubscription{SubscriptionID: id, AsOf: time.Now()}
	require.NoError(t, action.Perform(context.Background(), deps))
	assert.Equal(t, 0, store.TransactionCount())
}
