package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	Name            string `json:"name" required:"true" minLength:"1" doc:"Account name"`
	Type            string `json:"type,omitempty" enum:"checking,savings,credit,investment,other" doc:"Account type, defaults to other"`
	Number          string `json:"number,omitempty" doc:"External account number"`
	StartingBalance string `json:"startingBalance,omitempty" doc:"Starting balance (e.g. '0' or '1234.56'), defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateAccountBody
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

// accountCreator is the interface for creating accounts.
type accountCreator interface {
	CreateAccount(ctx context.Context, ownerID uuid.UUID, in service.AccountCreateInput) (*service.Account, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new account. The starting balance doubles as the initial balance.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (service.AccountCreateInput, error) {
	startingBalanceStr := input.Body.StartingBalance
	if startingBalanceStr == "" {
		startingBalanceStr = "0"
	}
	startingBalance, err := decimal.NewFromString(startingBalanceStr)
	if err != nil {
		return service.AccountCreateInput{}, huma.NewError(http.StatusBadRequest, "invalid startingBalance", err)
	}

	accountType, err := account.ParseAccountType(input.Body.Type)
	if err != nil {
		return service.AccountCreateInput{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}

	return service.AccountCreateInput{
		Name:            input.Body.Name,
		Type:            accountType,
		Number:          input.Body.Number,
		StartingBalance: startingBalance,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	in, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logData.AddTiming("createAccountMs")
	created, err := h.AccountService.CreateAccount(ctx, ownerID, in)
	stopTimer()
	if err != nil {
		return nil, httperr.Domain(err, "failed to create account")
	}

	logData.AddData("accountID", created.ID.String())

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   fromService(created),
	}, nil
}
