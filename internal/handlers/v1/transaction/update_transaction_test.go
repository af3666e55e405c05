package transaction

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

func newUpdateTestAPI(t *testing.T, svc transactionAmender) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewUpdateTransactionHandler(svc).Register(api)
	return api
}

func strPtr(s string) *string {
	return &s
}

// -- parseUpdateTransactionInput unit tests --

func TestParseUpdateTransactionInput_AbsentFieldsStayUnset(t *testing.T) {
	input := &UpdateTransactionInput{
		Body: UpdateTransactionBody{
			Amount: strPtr("45.00"),
		},
	}

	in, err := parseUpdateTransactionInput(input)
	assert.NoError(t, err)
	assert.True(t, in.Amount.IsValue())
	assert.True(t, in.Amount.MustGet().Equal(decimal.RequireFromString("45.00")))
	assert.True(t, in.AccountID.IsUnset())
	assert.False(t, in.Type.IsValue())
	assert.False(t, in.Description.IsValue())
}

func TestParseUpdateTransactionInput_EmptyAccountIDClearsLink(t *testing.T) {
	input := &UpdateTransactionInput{
		Body: UpdateTransactionBody{
			AccountID: strPtr(""),
		},
	}

	in, err := parseUpdateTransactionInput(input)
	assert.NoError(t, err)
	assert.True(t, in.AccountID.IsNull())
}

func TestParseUpdateTransactionInput_NewAccountID(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	input := &UpdateTransactionInput{
		Body: UpdateTransactionBody{
			AccountID: strPtr(accountID.String()),
		},
	}

	in, err := parseUpdateTransactionInput(input)
	assert.NoError(t, err)
	assert.Equal(t, accountID, *in.AccountID.MustPtr())
}

func TestParseUpdateTransactionInput_BadAmount(t *testing.T) {
	input := &UpdateTransactionInput{
		Body: UpdateTransactionBody{
			Amount: strPtr("abc"),
		},
	}

	_, err := parseUpdateTransactionInput(input)
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_UpdateTransaction_Success(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	amended := sampleTransaction(ownerID, nil)
	amended.Amount = decimal.RequireFromString("45.00")

	mockTxn := new(mockTransactionService)
	mockTxn.On("Amend", mock.Anything, ownerID, amended.ID, mock.MatchedBy(func(in ledger.AmendInput) bool {
		return in.Amount.IsValue() &&
			in.Amount.MustGet().Equal(decimal.RequireFromString("45.00")) &&
			!in.Description.IsValue()
	})).Return(amended, nil)

	resp := newUpdateTestAPI(t, mockTxn).Patch("/v1/transaction/"+amended.ID.String(),
		ownerHeader(ownerID),
		UpdateTransactionBody{Amount: strPtr("45.00")})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "45", body.Amount)
	mockTxn.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_TypeFlip(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	amended := sampleTransaction(ownerID, nil)
	amended.Type = transaction.EntryIncome

	mockTxn := new(mockTransactionService)
	mockTxn.On("Amend", mock.Anything, ownerID, amended.ID, mock.MatchedBy(func(in ledger.AmendInput) bool {
		return in.Type.IsValue() && in.Type.MustGet() == transaction.EntryIncome
	})).Return(amended, nil)

	resp := newUpdateTestAPI(t, mockTxn).Patch("/v1/transaction/"+amended.ID.String(),
		ownerHeader(ownerID),
		UpdateTransactionBody{Type: strPtr("income")})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockTxn.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_NotFound(t *testing.T) {
	ownerID := uuid.Must(uuid.NewV4())
	id := uuid.Must(uuid.NewV4())

	mockTxn := new(mockTransactionService)
	mockTxn.On("Amend", mock.Anything, ownerID, id, mock.Anything).
		Return(nil, ledger.ErrNotFound)

	resp := newUpdateTestAPI(t, mockTxn).Patch("/v1/transaction/"+id.String(),
		ownerHeader(ownerID),
		UpdateTransactionBody{Description: strPtr("New description")})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockTxn.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_InvalidID(t *testing.T) {
	mockTxn := new(mockTransactionService)

	resp := newUpdateTestAPI(t, mockTxn).Patch("/v1/transaction/not-a-uuid",
		ownerHeader(uuid.Must(uuid.NewV4())),
		UpdateTransactionBody{Description: strPtr("New description")})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockTxn.AssertNotCalled(t, "Amend")
}
