package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type Period int8

const (
	PeriodWeekly Period = iota
	PeriodMonthly
	PeriodYearly
)

func (p Period) String() string {
	switch p {
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	case PeriodYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

func ParsePeriod(s string) (Period, error) {
	switch s {
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	case "yearly":
		return PeriodYearly, nil
	default:
		return 0, fmt.Errorf("unknown budget period %q", s)
	}
}

// Budget caps expense spending for one category per period. Budgets are
// read-only consumers of transaction aggregates and never mutate the ledger.
type Budget struct {
	ID         uuid.UUID       `db:"id"`
	OwnerID    uuid.UUID       `db:"owner_id"`
	CategoryID uuid.UUID       `db:"category_id"`
	Ceiling    decimal.Decimal `db:"ceiling"`
	Period     Period          `db:"period"`
	CreatedAt  time.Time       `db:"created_at"`
}

// BudgetCreate is the input for creating a new budget.
type BudgetCreate struct {
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
	Ceiling    decimal.Decimal
	Period     Period
}

// Table defines the interface for budget storage operations.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	Insert(ctx context.Context, create *BudgetCreate) (*Budget, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error)
	ListByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) ([]*Budget, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}
