package transaction

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// ImportRow is one row of a bulk import. An empty id creates a new
// transaction; a non-empty id replaces that transaction's full field set.
type ImportRow struct {
	ID          string `json:"id,omitempty" doc:"Existing transaction UUID to replace, empty to create"`
	AccountID   string `json:"accountID,omitempty" doc:"Account UUID, empty for an unlinked transaction"`
	CategoryID  string `json:"categoryID,omitempty" doc:"Category UUID"`
	Amount      string `json:"amount" required:"true" doc:"Positive decimal amount with at most 2 decimal places"`
	Type        string `json:"type" required:"true" enum:"income,expense" doc:"Entry type"`
	OccurredOn  string `json:"occurredOn" required:"true" doc:"RFC3339 date the transaction occurred"`
	Description string `json:"description" required:"true" minLength:"1" doc:"Transaction description"`
	Method      string `json:"method,omitempty" enum:"other,cash,card,transfer" doc:"Payment method, defaults to other"`
}

// ImportTransactionsBody is the request body for a bulk import.
type ImportTransactionsBody struct {
	Rows []ImportRow `json:"rows" required:"true" minItems:"1" maxItems:"1000" doc:"Rows to apply as one atomic batch"`
}

// ImportTransactionsInput is the Huma input for a bulk import.
type ImportTransactionsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    ImportTransactionsBody
}

// RowError reports a failure for one row of the batch.
type RowError struct {
	Row     int    `json:"row" doc:"Zero-based row index in the submitted batch"`
	Message string `json:"message" doc:"What was wrong with the row"`
}

// ImportTransactionsResponse summarizes the batch. When errors is non-empty
// nothing was persisted.
type ImportTransactionsResponse struct {
	Created   int        `json:"created" doc:"Rows that created a transaction"`
	Updated   int        `json:"updated" doc:"Rows that changed an existing transaction"`
	Unchanged int        `json:"unchanged" doc:"Update rows whose fields already matched"`
	Errors    []RowError `json:"errors,omitempty" doc:"Per-row failures, present only when the batch was rejected"`
}

// ImportTransactionsOutput is the Huma output for a bulk import.
type ImportTransactionsOutput struct {
	Status int
	Body   ImportTransactionsResponse
}

// transactionImporter is the interface for applying bulk imports.
type transactionImporter interface {
	Import(ctx context.Context, ownerID uuid.UUID, rows []ledger.RowSpec) (ledger.BulkResult, error)
}

// ImportTransactionsHandler handles POST /v1/transaction/import.
type ImportTransactionsHandler struct {
	TransactionService transactionImporter
}

// NewImportTransactionsHandler creates a new ImportTransactionsHandler.
func NewImportTransactionsHandler(svc transactionImporter) *ImportTransactionsHandler {
	return &ImportTransactionsHandler{TransactionService: svc}
}

// Register registers the import endpoint with the Huma API.
func (h *ImportTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/import",
		Summary:     "Import transactions",
		Description: "Applies a batch of create and replace rows as one atomic unit. A single invalid row rejects the whole batch with per-row errors.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseImportRows converts body rows into engine rows. Unparseable rows are
// reported by index instead of failing the request, matching the batch
// contract: nothing is applied while any row is reported.
func parseImportRows(rows []ImportRow) ([]ledger.RowSpec, []RowError) {
	specs := make([]ledger.RowSpec, 0, len(rows))
	var rowErrors []RowError

	for i, row := range rows {
		spec, err := parseImportRow(&row)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: i, Message: err.Error()})
			continue
		}
		specs = append(specs, spec)
	}
	return specs, rowErrors
}

func parseImportRow(row *ImportRow) (ledger.RowSpec, error) {
	id, err := parseOptionalUUID("id", row.ID)
	if err != nil {
		return ledger.RowSpec{}, fmt.Errorf("invalid id %q", row.ID)
	}
	accountID, err := parseOptionalUUID("accountID", row.AccountID)
	if err != nil {
		return ledger.RowSpec{}, fmt.Errorf("invalid accountID %q", row.AccountID)
	}
	categoryID, err := parseOptionalUUID("categoryID", row.CategoryID)
	if err != nil {
		return ledger.RowSpec{}, fmt.Errorf("invalid categoryID %q", row.CategoryID)
	}
	amount, err := decimal.NewFromString(row.Amount)
	if err != nil {
		return ledger.RowSpec{}, fmt.Errorf("invalid amount %q", row.Amount)
	}
	entryType, err := transaction.ParseEntryType(row.Type)
	if err != nil {
		return ledger.RowSpec{}, err
	}
	occurredOn, err := time.Parse(time.RFC3339, row.OccurredOn)
	if err != nil {
		return ledger.RowSpec{}, fmt.Errorf("invalid occurredOn %q", row.OccurredOn)
	}
	method, err := transaction.ParseMethod(row.Method)
	if err != nil {
		return ledger.RowSpec{}, err
	}

	return ledger.RowSpec{
		ID:          id,
		AccountID:   accountID,
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        entryType,
		OccurredOn:  occurredOn,
		Description: row.Description,
		Method:      method,
	}, nil
}

func (h *ImportTransactionsHandler) handle(ctx context.Context, input *ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	specs, rowErrors := parseImportRows(input.Body.Rows)
	if len(rowErrors) > 0 {
		return &ImportTransactionsOutput{
			Status: http.StatusUnprocessableEntity,
			Body:   ImportTransactionsResponse{Errors: rowErrors},
		}, nil
	}

	stopTimer := logData.AddTiming("importTransactionsMs")
	result, err := h.TransactionService.Import(ctx, ownerID, specs)
	stopTimer()
	if err != nil {
		return nil, httperr.Domain(err, "failed to import transactions")
	}

	resp := ImportTransactionsResponse{
		Created:   result.Created,
		Updated:   result.Updated,
		Unchanged: result.Unchanged,
	}
	for _, re := range result.Errors {
		resp.Errors = append(resp.Errors, RowError{Row: re.Row, Message: re.Message})
	}

	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	logData.AddData("importedRows", resp.Created+resp.Updated+resp.Unchanged)

	return &ImportTransactionsOutput{Status: status, Body: resp}, nil
}
