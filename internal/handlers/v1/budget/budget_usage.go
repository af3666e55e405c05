package budget

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// BudgetUsageInput is the Huma input for reading budget usage.
type BudgetUsageInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Budget UUID"`
}

// BudgetUsageResponse reports spending against the ceiling for the current period.
type BudgetUsageResponse struct {
	BudgetID    string `json:"budgetId"`
	CategoryID  string `json:"categoryId"`
	Ceiling     string `json:"ceiling"`
	Spent       string `json:"spent" doc:"Expense total inside the current period"`
	Remaining   string `json:"remaining" doc:"Ceiling minus spent, negative when exceeded"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd" doc:"Exclusive end of the current period"`
	Exceeded    bool   `json:"exceeded"`
}

// BudgetUsageOutput is the Huma output for reading budget usage.
type BudgetUsageOutput struct {
	Body BudgetUsageResponse
}

// usageReader is the interface for computing budget usage.
type usageReader interface {
	Usage(ctx context.Context, ownerID, id uuid.UUID, now time.Time) (*service.BudgetUsage, error)
}

// BudgetUsageHandler handles GET /v1/budget/{id}/usage.
type BudgetUsageHandler struct {
	BudgetService usageReader
}

// NewBudgetUsageHandler creates a new BudgetUsageHandler.
func NewBudgetUsageHandler(svc usageReader) *BudgetUsageHandler {
	return &BudgetUsageHandler{BudgetService: svc}
}

// Register registers the budget usage endpoint with the Huma API.
func (h *BudgetUsageHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "budget-usage",
		Method:      http.MethodGet,
		Path:        "/v1/budget/{id}/usage",
		Summary:     "Budget usage",
		Description: "Reports the category's expense total for the period containing today.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *BudgetUsageHandler) handle(ctx context.Context, input *BudgetUsageInput) (*BudgetUsageOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	id, err := httperr.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	usage, err := h.BudgetService.Usage(ctx, ownerID, id, time.Now())
	if err != nil {
		return nil, httperr.Domain(err, "failed to compute budget usage")
	}

	return &BudgetUsageOutput{Body: BudgetUsageResponse{
		BudgetID:    usage.BudgetID.String(),
		CategoryID:  usage.CategoryID.String(),
		Ceiling:     usage.Ceiling.String(),
		Spent:       usage.Spent.String(),
		Remaining:   usage.Remaining.String(),
		PeriodStart: usage.PeriodStart.Format(time.RFC3339),
		PeriodEnd:   usage.PeriodEnd.Format(time.RFC3339),
		Exceeded:    usage.Exceeded,
	}}, nil
}
