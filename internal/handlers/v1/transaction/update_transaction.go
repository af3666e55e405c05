package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// UpdateTransactionBody carries partial edits. Absent fields keep their
// current value; an empty accountID or categoryID clears the link.
type UpdateTransactionBody struct {
	AccountID   *string `json:"accountID,omitempty" doc:"New account UUID, empty string clears the link"`
	CategoryID  *string `json:"categoryID,omitempty" doc:"New category UUID, empty string clears the link"`
	Amount      *string `json:"amount,omitempty" doc:"New decimal amount"`
	Type        *string `json:"type,omitempty" enum:"income,expense" doc:"New entry type"`
	OccurredOn  *string `json:"occurredOn,omitempty" doc:"New RFC3339 occurrence date"`
	Description *string `json:"description,omitempty" doc:"New description"`
	Method      *string `json:"method,omitempty" enum:"other,cash,card,transfer" doc:"New payment method"`
}

// UpdateTransactionInput is the Huma input for amending a transaction.
type UpdateTransactionInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Transaction UUID"`
	Body    UpdateTransactionBody
}

// UpdateTransactionOutput is the Huma output for amending a transaction.
type UpdateTransactionOutput struct {
	Body Transaction
}

// transactionAmender is the interface for amending transactions.
type transactionAmender interface {
	Amend(ctx context.Context, ownerID, id uuid.UUID, in ledger.AmendInput) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PATCH /v1/transaction/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionAmender
}

// NewUpdateTransactionHandler creates a new UpdateTransactionHandler.
func NewUpdateTransactionHandler(svc transactionAmender) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

// Register registers the update transaction endpoint with the Huma API.
func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/v1/transaction/{id}",
		Summary:     "Amend transaction",
		Description: "Edits a transaction, reversing its old balance effect and applying the new one atomically.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (ledger.AmendInput, error) {
	var in ledger.AmendInput

	if input.Body.AccountID != nil {
		id, err := parseOptionalUUID("accountID", *input.Body.AccountID)
		if err != nil {
			return in, err
		}
		in.AccountID = omitnull.FromPtr(id)
	}
	if input.Body.CategoryID != nil {
		id, err := parseOptionalUUID("categoryID", *input.Body.CategoryID)
		if err != nil {
			return in, err
		}
		in.CategoryID = omitnull.FromPtr(id)
	}
	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return in, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		in.Amount = omit.From(amount)
	}
	if input.Body.Type != nil {
		entryType, err := transaction.ParseEntryType(*input.Body.Type)
		if err != nil {
			return in, huma.NewError(http.StatusBadRequest, "invalid type", err)
		}
		in.Type = omit.From(entryType)
	}
	if input.Body.OccurredOn != nil {
		occurredOn, err := time.Parse(time.RFC3339, *input.Body.OccurredOn)
		if err != nil {
			return in, huma.NewError(http.StatusBadRequest, "invalid occurredOn", err)
		}
		in.OccurredOn = omit.From(occurredOn)
	}
	if input.Body.Description != nil {
		in.Description = omit.From(*input.Body.Description)
	}
	if input.Body.Method != nil {
		method, err := transaction.ParseMethod(*input.Body.Method)
		if err != nil {
			return in, huma.NewError(http.StatusBadRequest, "invalid method", err)
		}
		in.Method = omit.From(method)
	}

	return in, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	id, err := httperr.ID("id", input.ID)
	if err != nil {
		return nil, err
	}
	in, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("amendTransactionMs")
	txn, err := h.TransactionService.Amend(ctx, ownerID, id, in)
	stopTimer()
	if err != nil {
		return nil, httperr.Domain(err, "failed to amend transaction")
	}

	return &UpdateTransactionOutput{Body: fromService(txn)}, nil
}
