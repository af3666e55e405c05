package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// ListTransactionsCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListTransactionsCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListTransactionsFilter narrows the listing. All fields are optional.
type ListTransactionsFilter struct {
	AccountID    string `json:"accountID,omitempty" doc:"Only transactions linked to this account"`
	CategoryID   string `json:"categoryID,omitempty" doc:"Only transactions in this category"`
	Type         string `json:"type,omitempty" enum:"income,expense" doc:"Only this entry type"`
	OccurredFrom string `json:"occurredFrom,omitempty" doc:"RFC3339 inclusive lower bound on occurrence date"`
	OccurredTo   string `json:"occurredTo,omitempty" doc:"RFC3339 exclusive upper bound on occurrence date"`
}

// ListTransactionsBody is the request body for listing transactions.
type ListTransactionsBody struct {
	Filter *ListTransactionsFilter `json:"filter,omitempty" doc:"Optional listing filters"`
	Cursor *ListTransactionsCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    ListTransactionsBody
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction           `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListTransactionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, ownerID uuid.UUID, filter *service.TransactionFilter, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler handles POST /v1/transaction/list.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List transactions",
		Description: "Returns a paginated list of the owner's transactions using cursor-based pagination.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsCursor parses and validates the request cursor.
// When a cursor is provided, limit and maxCreationTime come from it.
// Without a cursor, the service uses its default limit.
func parseListTransactionsCursor(cursor *ListTransactionsCursor) (*service.TransactionCursor, error) {
	if cursor == nil {
		return nil, nil
	}

	if cursor.Position < 0 {
		return nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	maxCreationTime, err := time.Parse(time.RFC3339, cursor.MaxCreationTime)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", err)
	}

	return &service.TransactionCursor{
		Position:        cursor.Position,
		Limit:           cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func parseListTransactionsFilter(filter *ListTransactionsFilter) (*service.TransactionFilter, error) {
	if filter == nil {
		return nil, nil
	}

	accountID, err := parseOptionalUUID("filter accountID", filter.AccountID)
	if err != nil {
		return nil, err
	}
	categoryID, err := parseOptionalUUID("filter categoryID", filter.CategoryID)
	if err != nil {
		return nil, err
	}

	out := &service.TransactionFilter{
		AccountID:  accountID,
		CategoryID: categoryID,
	}
	if filter.Type != "" {
		entryType, err := transaction.ParseEntryType(filter.Type)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid filter type", err)
		}
		out.Type = &entryType
	}
	if filter.OccurredFrom != "" {
		from, err := time.Parse(time.RFC3339, filter.OccurredFrom)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid occurredFrom", err)
		}
		out.OccurredFrom = &from
	}
	if filter.OccurredTo != "" {
		to, err := time.Parse(time.RFC3339, filter.OccurredTo)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid occurredTo", err)
		}
		out.OccurredTo = &to
	}
	return out, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	requestCursor, err := parseListTransactionsCursor(input.Body.Cursor)
	if err != nil {
		return nil, err
	}
	filter, err := parseListTransactionsFilter(input.Body.Filter)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	transactions, nextCursor, err := h.TransactionService.ListTransactions(ctx, ownerID, filter, requestCursor)
	stopTimer()
	if err != nil {
		return nil, httperr.Domain(err, "failed to list transactions")
	}

	logData.AddData("transactionCount", len(transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i := range transactions {
		resp.Transactions[i] = fromService(&transactions[i])
	}

	if nextCursor != nil {
		resp.NextCursor = &ListTransactionsCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339),
		}
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
