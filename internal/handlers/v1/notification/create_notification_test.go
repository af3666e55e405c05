package notification

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
	"github.com/carson-networks/finance-tracker/internal/storage/notification"
)

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) CreateNotification(ctx context.Context, ownerID uuid.UUID, in service.NotificationCreateInput) (*notification.Notification, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc notificationCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateNotificationHandler(svc).Register(api)
	return api
}

func ownerHeader(ownerID uuid.UUID) string {
	return "X-Owner-ID: " + ownerID.String()
}

func TestParseCreateNotificationInput_PurchaseRule(t *testing.T) {
	categoryID := uuid.Must(uuid.NewV4())

	input := &CreateNotificationInput{
		Body: CreateNotificationBody{
			CategoryID: categoryID.String(),
			Type:       "purchase",
			Title:      "Large purchase",
			Threshold:  "100.00",
		},
	}

	in, err := parseCreateNotificationInput(input)
	assert.NoError(t, err)
	assert.Equal(t, categoryID, *in.CategoryID)
	assert.Equal(t, notification.RulePurchase, in.Type)
	assert.True(t, in.Threshold.Equal(decimal.RequireFromString("100.00")))
}

func TestParseCreateNotificationInput_NoThreshold(t *testing.T) {
	input := &CreateNotificationInput{
		Body: CreateNotificationBody{
			Type:  "budget",
			Title: "Budget exceeded",
		},
	}

	in, err := parseCreateNotificationInput(input)
	assert.NoError(t, err)
	assert.Nil(t, in.CategoryID)
	assert.Nil(t, in.Threshold)
}

func TestHTTP_CreateNotification_Success(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	threshold := decimal.RequireFromString("100.00")
	created := &notification.Notification{
		ID:        uuid.Must(uuid.NewV4()),
		OwnerID:   ownerID,
		Type:      notification.RulePurchase,
		Title:     "Large purchase",
		Threshold: &threshold,
		Enabled:   true,
		CreatedAt: time.Now().UTC(),
	}

	mockSvc := new(mockNotificationService)
	mockSvc.On("CreateNotification", mock.Anything, ownerID, mock.MatchedBy(func(in service.NotificationCreateInput) bool {
		return in.Type == notification.RulePurchase &&
			in.Title == "Large purchase" &&
			in.Threshold != nil && in.Threshold.Equal(threshold)
	})).Return(created, nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/notification",
		ownerHeader(ownerID),
		CreateNotificationBody{
			Type:      "purchase",
			Title:     "Large purchase",
			Threshold: "100.00",
		})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Notification
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, created.ID.String(), body.ID)
	assert.Equal(t, "purchase", body.Type)
	assert.True(t, body.Enabled)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateNotification_MissingThresholdMapsTo422(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockNotificationService)
	mockSvc.On("CreateNotification", mock.Anything, ownerID, mock.Anything).
		Return(nil, &ledger.ValidationError{Field: "threshold", Message: "is required for purchase and balance rules"})

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/notification",
		ownerHeader(ownerID),
		CreateNotificationBody{Type: "balance", Title: "Low balance"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateNotification_UnknownTypeRejected(t *testing.T) {
	mockSvc := new(mockNotificationService)

	// The enum tag rejects this before the handler runs.
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/notification",
		ownerHeader(uuid.Must(uuid.NewV4())),
		map[string]any{"type": "sms", "title": "Ping"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateNotification")
}
