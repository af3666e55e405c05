package subscription

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

// CreateSubscriptionBody is the request body for creating a subscription.
type CreateSubscriptionBody struct {
	AccountID  string `json:"accountID,omitempty" doc:"Account to charge, empty for unlinked billing"`
	CategoryID string `json:"categoryID,omitempty" doc:"Category for generated transactions"`
	Name       string `json:"name" required:"true" minLength:"1" doc:"Subscription name"`
	Amount     string `json:"amount" required:"true" doc:"Positive decimal amount billed each cycle"`
	Frequency  string `json:"frequency" required:"true" enum:"weekly,monthly,yearly" doc:"Billing frequency"`
	BillingDay int    `json:"billingDay" required:"true" minimum:"1" maximum:"31" doc:"Day of week (1-7) or day of month (1-31)"`
}

// CreateSubscriptionInput is the Huma input for creating a subscription.
type CreateSubscriptionInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateSubscriptionBody
}

// CreateSubscriptionOutput is the Huma output for creating a subscription.
type CreateSubscriptionOutput struct {
	Status int
	Body   Subscription
}

// subscriptionCreator is the interface for creating subscriptions.
type subscriptionCreator interface {
	CreateSubscription(ctx context.Context, ownerID uuid.UUID, in service.SubscriptionCreateInput) (*subscription.Subscription, error)
}

// CreateSubscriptionHandler handles POST /v1/subscription.
type CreateSubscriptionHandler struct {
	SubscriptionService subscriptionCreator
}

// NewCreateSubscriptionHandler creates a new CreateSubscriptionHandler.
func NewCreateSubscriptionHandler(svc subscriptionCreator) *CreateSubscriptionHandler {
	return &CreateSubscriptionHandler{SubscriptionService: svc}
}

// Register registers the create subscription endpoint with the Huma API.
func (h *CreateSubscriptionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-subscription",
		Method:      http.MethodPost,
		Path:        "/v1/subscription",
		Summary:     "Create subscription",
		Description: "Creates a recurring payment that bills automatically on its schedule.",
		Tags:        []string{"Subscriptions"},
	}, h.handle)
}

func parseCreateSubscriptionInput(input *CreateSubscriptionInput) (service.SubscriptionCreateInput, error) {
	accountID, err := parseOptionalUUID("accountID", input.Body.AccountID)
	if err != nil {
		return service.SubscriptionCreateInput{}, err
	}
	categoryID, err := parseOptionalUUID("categoryID", input.Body.CategoryID)
	if err != nil {
		return service.SubscriptionCreateInput{}, err
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.SubscriptionCreateInput{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	frequency, err := subscription.ParseFrequency(input.Body.Frequency)
	if err != nil {
		return service.SubscriptionCreateInput{}, huma.NewError(http.StatusBadRequest, "invalid frequency", err)
	}

	return service.SubscriptionCreateInput{
		AccountID:  accountID,
		CategoryID: categoryID,
		Name:       input.Body.Name,
		Amount:     amount,
		Frequency:  frequency,
		BillingDay: int16(input.Body.BillingDay),
	}, nil
}

func parseOptionalUUID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.FromString(raw)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+field, err)
	}
	return &id, nil
}

func (h *CreateSubscriptionHandler) handle(ctx context.Context, input *CreateSubscriptionInput) (*CreateSubscriptionOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	in, err := parseCreateSubscriptionInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.SubscriptionService.CreateSubscription(ctx, ownerID, in)
	if err != nil {
		return nil, httperr.Domain(err, "failed to create subscription")
	}

	return &CreateSubscriptionOutput{
		Status: http.StatusCreated,
		Body:   fromStorage(created),
	}, nil
}
