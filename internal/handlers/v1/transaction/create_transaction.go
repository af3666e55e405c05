package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	AccountID   string `json:"accountID,omitempty" doc:"Account UUID, empty for an unlinked transaction"`
	CategoryID  string `json:"categoryID,omitempty" doc:"Category UUID"`
	Amount      string `json:"amount" required:"true" doc:"Positive decimal amount with at most 2 decimal places"`
	Type        string `json:"type" required:"true" enum:"income,expense" doc:"Entry type"`
	OccurredOn  string `json:"occurredOn" required:"true" doc:"RFC3339 date the transaction occurred"`
	Description string `json:"description" required:"true" minLength:"1" doc:"Transaction description"`
	Method      string `json:"method,omitempty" enum:"other,cash,card,transfer" doc:"Payment method, defaults to other"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	Transaction Transaction `json:"transaction" doc:"The created transaction"`
	Alerts      []Alert     `json:"alerts,omitempty" doc:"Notification rules the post triggered"`
}

// Alert is a notification rule that fired for this transaction.
type Alert struct {
	Type   string `json:"type" doc:"Rule type"`
	Title  string `json:"title" doc:"Rule title"`
	Detail string `json:"detail" doc:"What fired the rule"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// transactionPoster is the interface for posting transactions.
type transactionPoster interface {
	Post(ctx context.Context, ownerID uuid.UUID, in ledger.PostInput) (*service.Transaction, error)
}

// alertEvaluator is the interface for evaluating notification rules.
type alertEvaluator interface {
	Evaluate(ctx context.Context, ownerID uuid.UUID, txn *service.Transaction, newBalance *decimal.Decimal) ([]service.Alert, error)
}

// accountGetter is the interface for reading an account after the post.
type accountGetter interface {
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*service.Account, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService  transactionPoster
	NotificationService alertEvaluator
	AccountService      accountGetter
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(txn transactionPoster, alerts alertEvaluator, accounts accountGetter) *CreateTransactionHandler {
	return &CreateTransactionHandler{
		TransactionService:  txn,
		NotificationService: alerts,
		AccountService:      accounts,
	}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a transaction and applies its effect to the linked account's balance in the same atomic unit.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (ledger.PostInput, error) {
	accountID, err := parseOptionalUUID("accountID", input.Body.AccountID)
	if err != nil {
		return ledger.PostInput{}, err
	}
	categoryID, err := parseOptionalUUID("categoryID", input.Body.CategoryID)
	if err != nil {
		return ledger.PostInput{}, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return ledger.PostInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	entryType, err := transaction.ParseEntryType(input.Body.Type)
	if err != nil {
		return ledger.PostInput{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}
	occurredOn, err := time.Parse(time.RFC3339, input.Body.OccurredOn)
	if err != nil {
		return ledger.PostInput{}, huma.NewError(http.StatusBadRequest, "invalid occurredOn", err)
	}
	method, err := transaction.ParseMethod(input.Body.Method)
	if err != nil {
		return ledger.PostInput{}, huma.NewError(http.StatusBadRequest, "invalid method", err)
	}

	return ledger.PostInput{
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        entryType,
		OccurredOn:  occurredOn,
		Description: input.Body.Description,
		Method:      method,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	in, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("postTransactionMs")
	txn, err := h.TransactionService.Post(ctx, ownerID, in)
	stopTimer()
	if err != nil {
		return nil, httperr.Domain(err, "failed to create transaction")
	}

	logData.AddData("transactionID", txn.ID.String())

	resp := CreateTransactionResponse{Transaction: fromService(txn)}
	resp.Alerts = h.evaluateAlerts(ctx, ownerID, txn, logData)

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   resp,
	}, nil
}

// evaluateAlerts runs notification rules after the post committed. A rule
// evaluation failure is recorded but never fails the request.
func (h *CreateTransactionHandler) evaluateAlerts(ctx context.Context, ownerID uuid.UUID, txn *service.Transaction, logData *logging.LogData) []Alert {
	var newBalance *decimal.Decimal
	if txn.AccountID != nil {
		acct, err := h.AccountService.GetAccount(ctx, ownerID, *txn.AccountID)
		if err == nil {
			newBalance = &acct.Balance
		}
	}

	alerts, err := h.NotificationService.Evaluate(ctx, ownerID, txn, newBalance)
	if err != nil {
		logData.AddData("alertError", err.Error())
		return nil
	}

	converted := make([]Alert, len(alerts))
	for i, a := range alerts {
		converted[i] = Alert{Type: a.Type.String(), Title: a.Title, Detail: a.Detail}
	}
	return converted
}
