package category

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

func (m *MockTable) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*Category)
	return c, args.Error(1)
}

func (m *MockTable) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	args := m.Called(ctx, create)
	c, _ := args.Get(0).(*Category)
	return c, args.Error(1)
}

func (m *MockTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Category, error) {
	args := m.Called(ctx, ownerID)
	rows, _ := args.Get(0).([]*Category)
	return rows, args.Error(1)
}

func (m *MockTable) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}
