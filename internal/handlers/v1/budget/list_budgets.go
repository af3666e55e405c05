package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
)

// ListBudgetsInput is the Huma input for listing budgets.
type ListBudgetsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
}

// ListBudgetsResponse is the response body for listing budgets.
type ListBudgetsResponse struct {
	Budgets []Budget `json:"budgets"`
}

// ListBudgetsOutput is the Huma output for listing budgets.
type ListBudgetsOutput struct {
	Body ListBudgetsResponse
}

// budgetLister is the interface for listing budgets.
type budgetLister interface {
	ListBudgets(ctx context.Context, ownerID uuid.UUID) ([]*budget.Budget, error)
}

// ListBudgetsHandler handles GET /v1/budget.
type ListBudgetsHandler struct {
	BudgetService budgetLister
}

// NewListBudgetsHandler creates a new ListBudgetsHandler.
func NewListBudgetsHandler(svc budgetLister) *ListBudgetsHandler {
	return &ListBudgetsHandler{BudgetService: svc}
}

// Register registers the list budgets endpoint with the Huma API.
func (h *ListBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        "/v1/budget",
		Summary:     "List budgets",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *ListBudgetsHandler) handle(ctx context.Context, input *ListBudgetsInput) (*ListBudgetsOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	rows, err := h.BudgetService.ListBudgets(ctx, ownerID)
	if err != nil {
		return nil, httperr.Domain(err, "failed to list budgets")
	}

	out := make([]Budget, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromStorage(row))
	}
	return &ListBudgetsOutput{Body: ListBudgetsResponse{Budgets: out}}, nil
}
