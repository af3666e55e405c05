package subscription

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

type mockSubscriptionService struct {
	mock.Mock
}

func (m *mockSubscriptionService) CreateSubscription(ctx context.Context, ownerID uuid.UUID, in service.SubscriptionCreateInput) (*subscription.Subscription, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc subscriptionCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateSubscriptionHandler(svc).Register(api)
	return api
}

func ownerHeader(ownerID uuid.UUID) string {
	return "X-Owner-ID: " + ownerID.String()
}

func TestParseCreateSubscriptionInput_Valid(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	input := &CreateSubscriptionInput{
		Body: CreateSubscriptionBody{
			AccountID:  accountID.String(),
			Name:       "Streaming",
			Amount:     "9.99",
			Frequency:  "monthly",
			BillingDay: 15,
		},
	}

	in, err := parseCreateSubscriptionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, accountID, *in.AccountID)
	assert.Nil(t, in.CategoryID)
	assert.True(t, in.Amount.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, subscription.FrequencyMonthly, in.Frequency)
	assert.Equal(t, int16(15), in.BillingDay)
}

func TestParseCreateSubscriptionInput_BadAmount(t *testing.T) {
	input := &CreateSubscriptionInput{
		Body: CreateSubscriptionBody{
			Name:       "Streaming",
			Amount:     "abc",
			Frequency:  "monthly",
			BillingDay: 15,
		},
	}

	_, err := parseCreateSubscriptionInput(input)
	assert.Error(t, err)
}

func TestHTTP_CreateSubscription_Success(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	created := &subscription.Subscription{
		ID:            uuid.Must(uuid.NewV4()),
		OwnerID:       ownerID,
		Name:          "Streaming",
		Amount:        decimal.RequireFromString("9.99"),
		Frequency:     subscription.FrequencyMonthly,
		BillingDay:    15,
		NextBillingOn: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}

	mockSvc := new(mockSubscriptionService)
	mockSvc.On("CreateSubscription", mock.Anything, ownerID, mock.MatchedBy(func(in service.SubscriptionCreateInput) bool {
		return in.Name == "Streaming" &&
			in.Frequency == subscription.FrequencyMonthly &&
			in.BillingDay == 15
	})).Return(created, nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/subscription",
		ownerHeader(ownerID),
		CreateSubscriptionBody{
			Name:       "Streaming",
			Amount:     "9.99",
			Frequency:  "monthly",
			BillingDay: 15,
		})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Subscription
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.True(t, body.Active)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateSubscription_BillingDayOutOfRange(t *testing.T) {
	mockSvc := new(mockSubscriptionService)

	// The maximum:"31" tag rejects this before the handler runs.
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/subscription",
		ownerHeader(uuid.Must(uuid.NewV4())),
		CreateSubscriptionBody{
			Name:       "Streaming",
			Amount:     "9.99",
			Frequency:  "monthly",
			BillingDay: 32,
		})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateSubscription")
}

func TestHTTP_CreateSubscription_WeeklyDayValidationMapsTo422(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockSubscriptionService)
	mockSvc.On("CreateSubscription", mock.Anything, ownerID, mock.Anything).
		Return(nil, &ledger.ValidationError{Field: "billingDay", Message: "must be between 1 and 7 for weekly subscriptions"})

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/subscription",
		ownerHeader(ownerID),
		CreateSubscriptionBody{
			Name:       "Gym",
			Amount:     "15.00",
			Frequency:  "weekly",
			BillingDay: 12,
		})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertExpectations(t)
}
