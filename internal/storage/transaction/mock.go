package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTable is a testify mock of Table for service-level tests.
type MockTable struct {
	mock.Mock
}

var _ Table = (*MockTable)(nil)

func (m *MockTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*Transaction)
	return t, args.Error(1)
}

func (m *MockTable) List(ctx context.Context, ownerID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	args := m.Called(ctx, ownerID, filter)
	rows, _ := args.Get(0).([]*Transaction)
	return rows, args.Error(1)
}

func (m *MockTable) SumExpenses(ctx context.Context, ownerID, categoryID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, categoryID, from, to)
	sum, _ := args.Get(0).(decimal.Decimal)
	return sum, args.Error(1)
}
