package budget

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
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) Usage(ctx context.Context, ownerID, id uuid.UUID, now time.Time) (*service.BudgetUsage, error) {
	args := m.Called(ctx, ownerID, id, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BudgetUsage), args.Error(1)
}

func newUsageTestAPI(t *testing.T, svc usageReader) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewBudgetUsageHandler(svc).Register(api)
	return api
}

func ownerHeader(ownerID uuid.UUID) string {
	return "X-Owner-ID: " + ownerID.String()
}

func TestHTTP_BudgetUsage_Exceeded(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	budgetID := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockBudgetService)
	mockSvc.On("Usage", mock.Anything, ownerID, budgetID, mock.Anything).
		Return(&service.BudgetUsage{
			BudgetID:    budgetID,
			CategoryID:  categoryID,
			Ceiling:     decimal.RequireFromString("200.00"),
			Spent:       decimal.RequireFromString("220.50"),
			Remaining:   decimal.RequireFromString("-20.50"),
			PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			PeriodEnd:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Exceeded:    true,
		}, nil)

	resp := newUsageTestAPI(t, mockSvc).Get("/v1/budget/"+budgetID.String()+"/usage",
		ownerHeader(ownerID))

	assert.Equal(t, http.StatusOK, resp.Code)
	var body BudgetUsageResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Exceeded)
	assert.Equal(t, "-20.5", body.Remaining)
	assert.Equal(t, "2026-08-01T00:00:00Z", body.PeriodStart)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_BudgetUsage_NotFound(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	budgetID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockBudgetService)
	mockSvc.On("Usage", mock.Anything, ownerID, budgetID, mock.Anything).
		Return(nil, ledger.ErrNotFound)

	resp := newUsageTestAPI(t, mockSvc).Get("/v1/budget/"+budgetID.String()+"/usage",
		ownerHeader(ownerID))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_BudgetUsage_InvalidID(t *testing.T) {
	mockSvc := new(mockBudgetService)

	resp := newUsageTestAPI(t, mockSvc).Get("/v1/budget/not-a-uuid/usage",
		ownerHeader(uuid.Must(uuid.NewV4())))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Usage")
}
