package subscription

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
)

// UpdateSubscriptionBody toggles billing for a subscription.
type UpdateSubscriptionBody struct {
	Active bool `json:"active" doc:"False pauses billing, true resumes it"`
}

// UpdateSubscriptionInput is the Huma input for pausing or resuming a subscription.
type UpdateSubscriptionInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Subscription UUID"`
	Body    UpdateSubscriptionBody
}

// UpdateSubscriptionOutput is the Huma output for pausing or resuming a subscription.
type UpdateSubscriptionOutput struct {
	Status int
}

// subscriptionToggler is the interface for pausing and resuming subscriptions.
type subscriptionToggler interface {
	SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) error
}

// UpdateSubscriptionHandler handles PATCH /v1/subscription/{id}.
type UpdateSubscriptionHandler struct {
	SubscriptionService subscriptionToggler
}

// NewUpdateSubscriptionHandler creates a new UpdateSubscriptionHandler.
func NewUpdateSubscriptionHandler(svc subscriptionToggler) *UpdateSubscriptionHandler {
	return &UpdateSubscriptionHandler{SubscriptionService: svc}
}

// Register registers the update subscription endpoint with the Huma API.
func (h *UpdateSubscriptionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-subscription",
		Method:      http.MethodPatch,
		Path:        "/v1/subscription/{id}",
		Summary:     "Pause or resume subscription",
		Tags:        []string{"Subscriptions"},
	}, h.handle)
}

func (h *UpdateSubscriptionHandler) handle(ctx context.Context, input *UpdateSubscriptionInput) (*UpdateSubscriptionOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	id, err := httperr.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.SubscriptionService.SetActive(ctx, ownerID, id, input.Body.Active); err != nil {
		return nil, httperr.Domain(err, "failed to update subscription")
	}
	return &UpdateSubscriptionOutput{Status: http.StatusNoContent}, nil
}
