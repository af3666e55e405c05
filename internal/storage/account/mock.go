package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTable is a testify mock of Table for service-level tests.
type MockTable struct {
	mock.Mock
}

var _ Table = (*MockTable)(nil)

func (m *MockTable) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*Account)
	return a, args.Error(1)
}

func (m *MockTable) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	args := m.Called(ctx, create)
	a, _ := args.Get(0).(*Account)
	return a, args.Error(1)
}

func (m *MockTable) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter *AccountFilter) ([]*Account, error) {
	args := m.Called(ctx, ownerID, filter)
	rows, _ := args.Get(0).([]*Account)
	return rows, args.Error(1)
}

func (m *MockTable) SumEffects(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	sum, _ := args.Get(0).(decimal.Decimal)
	return sum, args.Error(1)
}
