package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
)

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	CategoryID string `json:"categoryID" required:"true" doc:"Category the ceiling applies to"`
	Ceiling    string `json:"ceiling" required:"true" doc:"Positive decimal spending ceiling"`
	Period     string `json:"period" required:"true" enum:"weekly,monthly,yearly" doc:"Budget period"`
}

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateBudgetBody
}

// CreateBudgetOutput is the Huma output for creating a budget.
type CreateBudgetOutput struct {
	Status int
	Body   Budget
}

// budgetCreator is the interface for creating budgets.
type budgetCreator interface {
	CreateBudget(ctx context.Context, ownerID, categoryID uuid.UUID, ceiling decimal.Decimal, period budget.Period) (*budget.Budget, error)
}

// CreateBudgetHandler handles POST /v1/budget.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

// NewCreateBudgetHandler creates a new CreateBudgetHandler.
func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

// Register registers the create budget endpoint with the Huma API.
func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-budget",
		Method:      http.MethodPost,
		Path:        "/v1/budget",
		Summary:     "Create budget",
		Description: "Sets an advisory spending ceiling for one category per period.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*CreateBudgetOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	categoryID, err := uuid.FromString(input.Body.CategoryID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
	}
	ceiling, err := decimal.NewFromString(input.Body.Ceiling)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid ceiling", err)
	}
	period, err := budget.ParsePeriod(input.Body.Period)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid period", err)
	}

	created, err := h.BudgetService.CreateBudget(ctx, ownerID, categoryID, ceiling, period)
	if err != nil {
		return nil, httperr.Domain(err, "failed to create budget")
	}

	return &CreateBudgetOutput{
		Status: http.StatusCreated,
		Body:   fromStorage(created),
	}, nil
}
