package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

func newTestAccountService(t *testing.T) (*AccountService, *account.MockTable) {
	t.Helper()
	mockTable := &account.MockTable{}
	t.Cleanup(func() { mockTable.AssertExpectations(t) })
	store := &storage.Storage{Accounts: mockTable}
	return NewAccountService(store), mockTable
}

func TestCreateAccount_Success(t *testing.T) {
	svc, mockTable := newTestAccountService(t)

	owner := uuid.Must(uuid.NewV4())
	starting := decimal.RequireFromString("250.75")

	mockTable.On("Insert", mock.Anything, mock.MatchedBy(func(c *account.AccountCreate) bool {
		return c.OwnerID == owner && c.Name == "Checking" && c.StartingBalance.Equal(starting)
	})).Return(&account.Account{
		ID:              uuid.Must(uuid.NewV4()),
		OwnerID:         owner,
		Name:            "Checking",
		Balance:         starting,
		StartingBalance: starting,
	}, nil)

	got, err := svc.CreateAccount(context.Background(), owner, AccountCreateInput{
		Name:            "Checking",
		Type:            account.AccountTypeChecking,
		StartingBalance: starting,
	})
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(starting))
}

func TestCreateAccount_Validation(t *testing.T) {
	svc, _ := newTestAccountService(t)

	tests := []struct {
		name  string
		input AccountCreateInput
		field string
	}{
		{"blank name", AccountCreateInput{Name: "  "}, "name"},
		{"fractional cents", AccountCreateInput{Name: "a", StartingBalance: decimal.RequireFromString("1.005")}, "startingBalance"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAccount(context.Background(), uuid.Must(uuid.NewV4()), tc.input)
			var verr *ledger.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestGetAccount_OwnerScoped(t *testing.T) {
	svc, mockTable := newTestAccountService(t)

	owner := uuid.Must(uuid.NewV4())
	row := &account.Account{ID: uuid.Must(uuid.NewV4()), OwnerID: owner, Name: "Savings"}
	mockTable.On("FindByID", mock.Anything, row.ID).Return(row, nil)

	got, err := svc.GetAccount(context.Background(), owner, row.ID)
	require.NoError(t, err)
	assert.Equal(t, "Savings", got.Name)

	_, err = svc.GetAccount(context.Background(), uuid.Must(uuid.NewV4()), row.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestReconcile_Consistent(t *testing.T) {
	svc, mockTable := newTestAccountService(t)

	owner := uuid.Must(uuid.NewV4())
	row := &account.Account{
		ID:              uuid.Must(uuid.NewV4()),
		OwnerID:         owner,
		Balance:         decimal.RequireFromString("150"),
		StartingBalance: decimal.RequireFromString("100"),
	}
	mockTable.On("FindByID", mock.Anything, row.ID).Return(row, nil)
	mockTable.On("SumEffects", mock.Anything, row.ID).Return(decimal.RequireFromString("50"), nil)

	report, err := svc.Reconcile(context.Background(), owner, row.ID)
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.True(t, report.Drift.IsZero())
	assert.True(t, report.Expected.Equal(decimal.RequireFromString("150")))
}

func TestReconcile_ReportsDrift(t *testing.T) {
	svc, mockTable := newTestAccountService(t)

	owner := uuid.Must(uuid.NewV4())
	row := &account.Account{
		ID:              uuid.Must(uuid.NewV4()),
		OwnerID:         owner,
		Balance:         decimal.RequireFromString("175"),
		StartingBalance: decimal.RequireFromString("100"),
	}
	mockTable.On("FindByID", mock.Anything, row.ID).Return(row, nil)
	mockTable.On("SumEffects", mock.Anything, row.ID).Return(decimal.RequireFromString("50"), nil)

	report, err := svc.Reconcile(context.Background(), owner, row.ID)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	assert.True(t, report.Drift.Equal(decimal.RequireFromString("25")))
}

func TestListAccounts_Pagination(t *testing.T) {
	svc, mockTable := newTestAccountService(t)

	owner := uuid.Must(uuid.NewV4())
	rows := make([]*account.Account, 3)
	for i := range rows {
		rows[i] = &account.Account{ID: uuid.Must(uuid.NewV4()), OwnerID: owner}
	}

	mockTable.On("ListByOwner", mock.Anything, owner, mock.MatchedBy(func(f *account.AccountFilter) bool {
		return f.Limit == 2 && f.Offset == 0
	})).Return(rows, nil)

	accounts, nextCursor, err := svc.ListAccounts(context.Background(), owner, &AccountCursor{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
	if assert.NotNil(t, nextCursor) {
		assert.Equal(t, 2, nextCursor.Position)
	}
}
