package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// ReconcileAccountInput is the Huma input for reconciling an account.
type ReconcileAccountInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Account UUID"`
}

// ReconcileAccountResponse reports the stored balance against the balance
// implied by the account's transactions.
type ReconcileAccountResponse struct {
	AccountID  string `json:"accountID" doc:"Account UUID"`
	Balance    string `json:"balance" doc:"Stored decimal balance"`
	Expected   string `json:"expected" doc:"Starting balance plus the signed sum of transaction effects"`
	Drift      string `json:"drift" doc:"Stored minus expected, zero for a consistent account"`
	Consistent bool   `json:"consistent" doc:"True when stored and expected balances match"`
}

// ReconcileAccountOutput is the Huma output for reconciling an account.
type ReconcileAccountOutput struct {
	Body ReconcileAccountResponse
}

// accountReconciler is the interface for reconciling accounts.
type accountReconciler interface {
	Reconcile(ctx context.Context, ownerID, id uuid.UUID) (*service.Reconciliation, error)
}

// ReconcileAccountHandler handles GET /v1/account/{id}/reconciliation.
type ReconcileAccountHandler struct {
	AccountService accountReconciler
}

// NewReconcileAccountHandler creates a new ReconcileAccountHandler.
func NewReconcileAccountHandler(svc accountReconciler) *ReconcileAccountHandler {
	return &ReconcileAccountHandler{AccountService: svc}
}

// Register registers the reconcile endpoint with the Huma API.
func (h *ReconcileAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reconcile-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/reconciliation",
		Summary:     "Reconcile account",
		Description: "Recomputes the balance implied by the account's transactions and reports any drift from the stored balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *ReconcileAccountHandler) handle(ctx context.Context, input *ReconcileAccountInput) (*ReconcileAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	id, err := httperr.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("reconcileAccountMs")
	report, err := h.AccountService.Reconcile(ctx, ownerID, id)
	stopTimer()
	if err != nil {
		return nil, httperr.Domain(err, "failed to reconcile account")
	}

	logData.AddData("consistent", report.Consistent)

	return &ReconcileAccountOutput{Body: ReconcileAccountResponse{
		AccountID:  report.AccountID.String(),
		Balance:    report.Balance.String(),
		Expected:   report.Expected.String(),
		Drift:      report.Drift.String(),
		Consistent: report.Consistent,
	}}, nil
}
