package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

const defaultLimit = 20

// TransactionService handles transaction business logic. Every write goes
// through the ledger engine so account balances stay consistent with the
// transactions behind them.
type TransactionService struct {
	storage *storage.Storage
	engine  *ledger.Engine
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, engine *ledger.Engine) *TransactionService {
	return &TransactionService{storage: store, engine: engine}
}

// Post creates a transaction and applies its balance effect.
func (s *TransactionService) Post(ctx context.Context, ownerID uuid.UUID, in ledger.PostInput) (*Transaction, error) {
	row, err := s.engine.Post(ctx, ownerID, in)
	if err != nil {
		return nil, err
	}
	out := transactionFromStorage(row)
	return &out, nil
}

// Amend edits a transaction, reversing its old effect and applying the new one.
func (s *TransactionService) Amend(ctx context.Context, ownerID, id uuid.UUID, in ledger.AmendInput) (*Transaction, error) {
	row, err := s.engine.Amend(ctx, ownerID, id, in)
	if err != nil {
		return nil, err
	}
	out := transactionFromStorage(row)
	return &out, nil
}

// Retract deletes a transaction and reverses its balance effect.
func (s *TransactionService) Retract(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.engine.Retract(ctx, ownerID, id)
}

// Import applies a batch of rows all-or-nothing.
func (s *TransactionService) Import(ctx context.Context, ownerID uuid.UUID, rows []ledger.RowSpec) (ledger.BulkResult, error) {
	return s.engine.BulkReconcile(ctx, ownerID, rows)
}

// GetTransaction retrieves a transaction by ID, scoped to its owner.
func (s *TransactionService) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.OwnerID != ownerID {
		return nil, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	out := transactionFromStorage(row)
	return &out, nil
}

// ListTransactions returns a page of the owner's transactions using
// cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID uuid.UUID, filter *TransactionFilter, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	storageFilter := &transaction.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if filter != nil {
		storageFilter.AccountID = filter.AccountID
		storageFilter.CategoryID = filter.CategoryID
		storageFilter.Type = filter.Type
		storageFilter.OccurredFrom = filter.OccurredFrom
		storageFilter.OccurredTo = filter.OccurredTo
	}

	rows, err := s.storage.Transactions.List(ctx, ownerID, storageFilter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}

	return converted, nextCursor, nil
}
