package subscription

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
)

// DeleteSubscriptionInput is the Huma input for deleting a subscription.
type DeleteSubscriptionInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Subscription UUID"`
}

// DeleteSubscriptionOutput is the Huma output for deleting a subscription.
type DeleteSubscriptionOutput struct {
	Status int
}

// subscriptionDeleter is the interface for deleting subscriptions.
type subscriptionDeleter interface {
	DeleteSubscription(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteSubscriptionHandler handles DELETE /v1/subscription/{id}.
type DeleteSubscriptionHandler struct {
	SubscriptionService subscriptionDeleter
}

// NewDeleteSubscriptionHandler creates a new DeleteSubscriptionHandler.
func NewDeleteSubscriptionHandler(svc subscriptionDeleter) *DeleteSubscriptionHandler {
	return &DeleteSubscriptionHandler{SubscriptionService: svc}
}

// Register registers the delete subscription endpoint with the Huma API.
func (h *DeleteSubscriptionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-subscription",
		Method:      http.MethodDelete,
		Path:        "/v1/subscription/{id}",
		Summary:     "Delete subscription",
		Tags:        []string{"Subscriptions"},
	}, h.handle)
}

func (h *DeleteSubscriptionHandler) handle(ctx context.Context, input *DeleteSubscriptionInput) (*DeleteSubscriptionOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	id, err := httperr.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.SubscriptionService.DeleteSubscription(ctx, ownerID, id); err != nil {
		return nil, httperr.Domain(err, "failed to delete subscription")
	}
	return &DeleteSubscriptionOutput{Status: http.StatusNoContent}, nil
}
