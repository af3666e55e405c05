package category

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Kind classifies a category as grouping income or expense transactions.
// Categories carry no balance effect of their own.
type Kind int8

const (
	KindIncome Kind = iota
	KindExpense
)

func (k Kind) String() string {
	if k == KindIncome {
		return "income"
	}
	return "expense"
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "income":
		return KindIncome, nil
	case "expense":
		return KindExpense, nil
	default:
		return 0, fmt.Errorf("unknown category kind %q", s)
	}
}

// Category represents a classification label owned by one user.
type Category struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Name      string    `db:"name"`
	Kind      Kind      `db:"kind"`
	CreatedAt time.Time `db:"created_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	OwnerID uuid.UUID
	Name    string
	Kind    Kind
}

// Table defines the interface for category storage operations.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Category, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}
