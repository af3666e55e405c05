package subscription

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

// ListSubscriptionsInput is the Huma input for listing subscriptions.
type ListSubscriptionsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
}

// ListSubscriptionsResponseBody is the response body for listing subscriptions.
type ListSubscriptionsResponseBody struct {
	Subscriptions []Subscription `json:"subscriptions" doc:"The owner's subscriptions"`
}

// ListSubscriptionsOutput is the Huma output for listing subscriptions.
type ListSubscriptionsOutput struct {
	Body ListSubscriptionsResponseBody
}

// subscriptionLister is the interface for listing subscriptions.
type subscriptionLister interface {
	ListSubscriptions(ctx context.Context, ownerID uuid.UUID) ([]*subscription.Subscription, error)
}

// ListSubscriptionsHandler handles GET /v1/subscription.
type ListSubscriptionsHandler struct {
	SubscriptionService subscriptionLister
}

// NewListSubscriptionsHandler creates a new ListSubscriptionsHandler.
func NewListSubscriptionsHandler(svc subscriptionLister) *ListSubscriptionsHandler {
	return &ListSubscriptionsHandler{SubscriptionService: svc}
}

// Register registers the list subscriptions endpoint with the Huma API.
func (h *ListSubscriptionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-subscriptions",
		Method:      http.MethodGet,
		Path:        "/v1/subscription",
		Summary:     "List subscriptions",
		Tags:        []string{"Subscriptions"},
	}, h.handle)
}

func (h *ListSubscriptionsHandler) handle(ctx context.Context, input *ListSubscriptionsInput) (*ListSubscriptionsOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	rows, err := h.SubscriptionService.ListSubscriptions(ctx, ownerID)
	if err != nil {
		return nil, httperr.Domain(err, "failed to list subscriptions")
	}

	resp := ListSubscriptionsResponseBody{Subscriptions: make([]Subscription, len(rows))}
	for i, row := range rows {
		resp.Subscriptions[i] = fromStorage(row)
	}
	return &ListSubscriptionsOutput{Body: resp}, nil
}
