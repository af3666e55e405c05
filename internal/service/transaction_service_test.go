package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

func newTestTransactionService(t *testing.T) (*TransactionService, *transaction.MockTable) {
	t.Helper()
	mockTable := &transaction.MockTable{}
	t.Cleanup(func() { mockTable.AssertExpectations(t) })
	store := &storage.Storage{Transactions: mockTable}
	svc := NewTransactionService(store, nil)
	return svc, mockTable
}

func makeStorageRows(owner uuid.UUID, n int, createdAt time.Time) []*transaction.Transaction {
	rows := make([]*transaction.Transaction, n)
	for i := range rows {
		rows[i] = &transaction.Transaction{
			ID:          uuid.Must(uuid.NewV4()),
			OwnerID:     owner,
			Amount:      decimal.RequireFromString("5.00"),
			Type:        transaction.EntryExpense,
			OccurredOn:  createdAt,
			Description: "item",
			CreatedAt:   createdAt,
		}
	}
	return rows
}

// -- GetTransaction tests --

func TestGetTransaction_OwnerScoped(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	row := makeStorageRows(owner, 1, time.Now())[0]
	mockTable.On("FindByID", mock.Anything, row.ID).Return(row, nil)

	got, err := svc.GetTransaction(context.Background(), owner, row.ID)
	assert.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)

	_, err = svc.GetTransaction(context.Background(), uuid.Must(uuid.NewV4()), row.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestGetTransaction_Missing(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	id := uuid.Must(uuid.NewV4())
	mockTable.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetTransaction(context.Background(), uuid.Must(uuid.NewV4()), id)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

// -- ListTransactions tests --

func TestListTransactions_NoResults(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	mockTable.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return([]*transaction.Transaction{}, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_FirstPageSetsCursor(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	createdAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := makeStorageRows(owner, defaultLimit+1, createdAt)

	mockTable.On("List", mock.Anything, owner, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), owner, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit)
	if assert.NotNil(t, nextCursor) {
		assert.Equal(t, defaultLimit, nextCursor.Position)
		assert.Equal(t, defaultLimit, nextCursor.Limit)
		assert.True(t, nextCursor.MaxCreationTime.Equal(createdAt))
	}
}

func TestListTransactions_SubsequentPageKeepsMaxCreationTime(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	pinned := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := makeStorageRows(owner, 6, pinned.Add(-time.Hour))

	mockTable.On("List", mock.Anything, owner, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 5 && f.Offset == 5 &&
			f.MaxCreationTime != nil && f.MaxCreationTime.Equal(pinned)
	})).Return(rows, nil)

	cursor := &TransactionCursor{Position: 5, Limit: 5, MaxCreationTime: pinned}
	txs, nextCursor, err := svc.ListTransactions(context.Background(), owner, nil, cursor)
	assert.NoError(t, err)
	assert.Len(t, txs, 5)
	if assert.NotNil(t, nextCursor) {
		assert.Equal(t, 10, nextCursor.Position)
		assert.True(t, nextCursor.MaxCreationTime.Equal(pinned))
	}
}

func TestListTransactions_LastPageHasNoCursor(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	rows := makeStorageRows(owner, 3, time.Now())

	mockTable.On("List", mock.Anything, owner, mock.Anything).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), owner, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, txs, 3)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_FilterPassedThrough(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	owner := uuid.Must(uuid.NewV4())
	accountID := uuid.Must(uuid.NewV4())
	entryType := transaction.EntryExpense

	mockTable.On("List", mock.Anything, owner, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.AccountID != nil && *f.AccountID == accountID &&
			f.Type != nil && *f.Type == entryType
	})).Return(makeStorageRows(owner, 1, time.Now()), nil)

	filter := &TransactionFilter{AccountID: &accountID, Type: &entryType}
	txs, _, err := svc.ListTransactions(context.Background(), owner, filter, nil)
	assert.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, mockTable := newTestTransactionService(t)

	mockTable.On("List", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, _, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), nil, nil)
	assert.Error(t, err)
}
