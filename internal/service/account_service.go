package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

const defaultAccountLimit = 20

// AccountService handles account business logic. It never writes balances;
// only the ledger engine does that.
type AccountService struct {
	storage *storage.Storage
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage) *AccountService {
	return &AccountService{storage: store}
}

// CreateAccount creates a new account. The starting balance doubles as the
// initial balance.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID, in AccountCreateInput) (*Account, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &ledger.ValidationError{Field: "name", Message: "is required"}
	}
	if !in.StartingBalance.Equal(in.StartingBalance.Round(2)) {
		return nil, &ledger.ValidationError{Field: "startingBalance", Message: "must have at most 2 decimal places"}
	}

	row, err := s.storage.Accounts.Insert(ctx, &account.AccountCreate{
		OwnerID:         ownerID,
		Name:            in.Name,
		Type:            in.Type,
		Number:          in.Number,
		StartingBalance: in.StartingBalance,
	})
	if err != nil {
		return nil, err
	}
	out := accountFromStorage(row)
	return &out, nil
}

// GetAccount retrieves an account by ID, scoped to its owner.
func (s *AccountService) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*Account, error) {
	row, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	out := accountFromStorage(row)
	return &out, nil
}

// ListAccounts returns a page of the owner's accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Accounts.ListByOwner(ctx, ownerID, &account.AccountFilter{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Account, len(rows))
	for i, row := range rows {
		converted[i] = accountFromStorage(row)
	}

	return converted, nextCursor, nil
}

// Reconcile recomputes the balance an account should have from its starting
// balance and the signed effects of its transactions, and reports any drift
// from the stored balance.
func (s *AccountService) Reconcile(ctx context.Context, ownerID, id uuid.UUID) (*Reconciliation, error) {
	row, err := s.findOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	sum, err := s.storage.Accounts.SumEffects(ctx, id)
	if err != nil {
		return nil, err
	}

	expected := row.StartingBalance.Add(sum)
	return &Reconciliation{
		AccountID:  row.ID,
		Balance:    row.Balance,
		Expected:   expected,
		Drift:      row.Balance.Sub(expected),
		Consistent: row.Balance.Equal(expected),
	}, nil
}

func (s *AccountService) findOwned(ctx context.Context, ownerID, id uuid.UUID) (*account.Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.OwnerID != ownerID {
		return nil, fmt.Errorf("account %s: %w", id, ledger.ErrNotFound)
	}
	return row, nil
}
