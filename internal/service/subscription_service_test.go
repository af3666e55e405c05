package service

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
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

func newTestSubscriptionService(t *testing.T) (*SubscriptionService, *subscription.MockTable) {
	t.Helper()
	mockTable := &subscription.MockTable{}
	t.Cleanup(func() { mockTable.AssertExpectations(t) })
	store := &storage.Storage{Subscriptions: mockTable}
	return NewSubscriptionService(store), mockTable
}

func TestCreateSubscription_Success(t *testing.T) {
	svc, mockTable := newTestSubscriptionService(t)

	owner := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("9.99")

	mockTable.On("Insert", mock.Anything, mock.MatchedBy(func(c *subscription.SubscriptionCreate) bool {
		return c.OwnerID == owner &&
			c.Name == "Streaming" &&
			c.Frequency == subscription.FrequencyMonthly &&
			c.BillingDay == 15 &&
			!c.NextBillingOn.IsZero() &&
			c.NextBillingOn.After(time.Now().Add(-24*time.Hour))
	})).Return(&subscription.Subscription{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   owner,
		Name:      "Streaming",
		Amount:    amount,
		Frequency: subscription.FrequencyMonthly,
		Active:    true,
	}, nil)

	got, err := svc.CreateSubscription(context.Background(), owner, SubscriptionCreateInput{
		Name:       "Streaming",
		Amount:     amount,
		Frequency:  subscription.FrequencyMonthly,
		BillingDay: 15,
	})
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestCreateSubscription_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    SubscriptionCreateInput
		field string
	}{
		{
			name:  "blank name",
			in:    SubscriptionCreateInput{Name: "  ", Amount: decimal.RequireFromString("9.99"), Frequency: subscription.FrequencyMonthly, BillingDay: 15},
			field: "name",
		},
		{
			name:  "zero amount",
			in:    SubscriptionCreateInput{Name: "Gym", Amount: decimal.Zero, Frequency: subscription.FrequencyMonthly, BillingDay: 15},
			field: "amount",
		},
		{
			name:  "three decimal places",
			in:    SubscriptionCreateInput{Name: "Gym", Amount: decimal.RequireFromString("9.999"), Frequency: subscription.FrequencyMonthly, BillingDay: 15},
			field: "amount",
		},
		{
			name:  "weekly day above 7",
			in:    SubscriptionCreateInput{Name: "Gym", Amount: decimal.RequireFromString("9.99"), Frequency: subscription.FrequencyWeekly, BillingDay: 8},
			field: "billingDay",
		},
		{
			name:  "monthly day above 31",
			in:    SubscriptionCreateInput{Name: "Gym", Amount: decimal.RequireFromString("9.99"), Frequency: subscription.FrequencyMonthly, BillingDay: 32},
			field: "billingDay",
		},
		{
			name:  "day below 1",
			in:    SubscriptionCreateInput{Name: "Gym", Amount: decimal.RequireFromString("9.99"), Frequency: subscription.FrequencyYearly, BillingDay: 0},
			field: "billingDay",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestSubscriptionService(t)

			_, err := svc.CreateSubscription(context.Background(), uuid.Must(uuid.NewV4()), tc.in)
			var verr *ledger.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestGetSubscription_OwnerScoped(t *testing.T) {
	svc, mockTable := newTestSubscriptionService(t)

	owner := uuid.Must(uuid.NewV4())
	stranger := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockTable.On("FindByID", mock.Anything, id).Return(&subscription.Subscription{
		ID:      id,
		OwnerID: owner,
		Name:    "Streaming",
	}, nil)

	_, err := svc.GetSubscription(context.Background(), stranger, id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	got, err := svc.GetSubscription(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Equal(t, "Streaming", got.Name)
}

func TestSetActive_UnknownSubscription(t *testing.T) {
	svc, mockTable := newTestSubscriptionService(t)

	owner := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockTable.On("SetActive", mock.Anything, owner, id, false).Return(false, nil)

	err := svc.SetActive(context.Background(), owner, id, false)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
