package subscription

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"
)

// MockTable is a testify mock of Table for service and billing tests.
type MockTable struct {
	mock.Mock
}

var _ Table = (*MockTable)(nil)

func (m *MockTable) FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*Subscription)
	return s, args.Error(1)
}

func (m *MockTable) Insert(ctx context.Context, create *SubscriptionCreate) (*Subscription, error) {
	args := m.Called(ctx, create)
	s, _ := args.Get(0).(*Subscription)
	return s, args.Error(1)
}

func (m *MockTable) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Subscription, error) {
	args := m.Called(ctx, ownerID)
	rows, _ := args.Get(0).([]*Subscription)
	return rows, args.Error(1)
}

func (m *MockTable) ListDue(ctx context.Context, asOf time.Time) ([]*Subscription, error) {
	args := m.Called(ctx, asOf)
	rows, _ := args.Get(0).([]*Subscription)
	return rows, args.Error(1)
}

func (m *MockTable) UpdateSchedule(ctx context.Context, id uuid.UUID, next time.Time, last time.Time) error {
	args := m.Called(ctx, id, next, last)
	return args.Error(0)
}

func (m *MockTable) SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) (bool, error) {
	args := m.Called(ctx, ownerID, id, active)
	return args.Bool(0), args.Error(1)
}

func (m *MockTable) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}
