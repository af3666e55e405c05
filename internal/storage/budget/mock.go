package budget

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"
)

// MockTable is a testify mock of Table for service-level tests.
type MockTable struct {
	mock.Mock
}

var _ Table = (*MockTable)(nil)

func (m *MockTable) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*Budget)
	return b, args.Error(1)
}

func (m *MockTable) Insert(ctx context.Context, create *BudgetCreate) (*Budget, error) {
	args := m.Called(ctx, create)
	b, _ := args.Get(0).(*Budget)
	return b, args.Error(1)
}

func (m *MockTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error) {
	args := m.Called(ctx, ownerID)
	rows, _ := args.Get(0).([]*Budget)
	return rows, args.Error(1)
}

func (m *MockTable) ListByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) ([]*Budget, error) {
	args := m.Called(ctx, ownerID, categoryID)
	rows, _ := args.Get(0).([]*Budget)
	return rows, args.Error(1)
}

func (m *MockTable) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}
