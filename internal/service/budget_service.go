package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
)

// BudgetUsage reports spending against a budget for the period containing
// the reference time.
type BudgetUsage struct {
	BudgetID    uuid.UUID
	CategoryID  uuid.UUID
	Ceiling     decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	PeriodStart time.Time
	PeriodEnd   time.Time
	Exceeded    bool
}

// BudgetService handles budget business logic. Budgets are advisory; they
// never block a transaction from posting.
type BudgetService struct {
	storage *storage.Storage
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store *storage.Storage) *BudgetService {
	return &BudgetService{storage: store}
}

func (s *BudgetService) CreateBudget(ctx context.Context, ownerID uuid.UUID, categoryID uuid.UUID, ceiling decimal.Decimal, period budget.Period) (*budget.Budget, error) {
	if ceiling.Sign() <= 0 || !ceiling.Equal(ceiling.Round(2)) {
		return nil, &ledger.ValidationError{Field: "ceiling", Message: "must be a positive amount with at most 2 decimal places"}
	}
	cat, err := s.storage.Categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.OwnerID != ownerID {
		return nil, fmt.Errorf("category %s: %w", categoryID, ledger.ErrNotFound)
	}

	return s.storage.Budgets.Insert(ctx, &budget.BudgetCreate{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Ceiling:    ceiling,
		Period:     period,
	})
}

func (s *BudgetService) GetBudget(ctx context.Context, ownerID, id uuid.UUID) (*budget.Budget, error) {
	return s.findOwned(ctx, ownerID, id)
}

func (s *BudgetService) ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*budget.Budget, error) {
	return s.storage.Budgets.ListByOwner(ctx, ownerID)
}

func (s *BudgetService) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.storage.Budgets.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("budget %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}

// Usage sums the category's expenses over the budget period containing now
// and compares them to the ceiling.
func (s *BudgetService) Usage(ctx context.Context, ownerID, id uuid.UUID, now time.Time) (*BudgetUsage, error) {
	row, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	start, end := PeriodWindow(row.Period, now)
	spent, err := s.storage.Transactions.SumExpenses(ctx, ownerID, row.CategoryID, start, end)
	if err != nil {
		return nil, err
	}

	return &BudgetUsage{
		BudgetID:    row.ID,
		CategoryID:  row.CategoryID,
		Ceiling:     row.Ceiling,
		Spent:       spent,
		Remaining:   row.Ceiling.Sub(spent),
		PeriodStart: start,
		PeriodEnd:   end,
		Exceeded:    spent.GreaterThan(row.Ceiling),
	}, nil
}

// PeriodWindow returns the half-open [start, end) interval of the budget
// period containing t. Weeks start on Monday.
func PeriodWindow(p budget.Period, t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	switch p {
	case budget.PeriodWeekly:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	case budget.PeriodYearly:
		start := time.Date(y, 1, 1, 0, 0, 0, 0, t.Location())
		return start, start.AddDate(1, 0, 0)
	default:
		start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
		return start, start.AddDate(0, 1, 0)
	}
}

func (s *BudgetService) findOwned(ctx context.Context, ownerID, id uuid.UUID) (*budget.Budget, error) {
	row, err := s.storage.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.OwnerID != ownerID {
		return nil, fmt.Errorf("budget %s: %w", id, ledger.ErrNotFound)
	}
	return row, nil
}
