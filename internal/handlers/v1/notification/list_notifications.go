package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/storage/notification"
)

// ListNotificationsInput is the Huma input for listing notification rules.
type ListNotificationsInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
}

// ListNotificationsResponse is the response body for listing notification rules.
type ListNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// ListNotificationsOutput is the Huma output for listing notification rules.
type ListNotificationsOutput struct {
	Body ListNotificationsResponse
}

// notificationLister is the interface for listing notification rules.
type notificationLister interface {
	ListNotifications(ctx context.Context, ownerID uuid.UUID) ([]*notification.Notification, error)
}

// ListNotificationsHandler handles GET /v1/notification.
type ListNotificationsHandler struct {
	NotificationService notificationLister
}

// NewListNotificationsHandler creates a new ListNotificationsHandler.
func NewListNotificationsHandler(svc notificationLister) *ListNotificationsHandler {
	return &ListNotificationsHandler{NotificationService: svc}
}

// Register registers the list notifications endpoint with the Huma API.
func (h *ListNotificationsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/v1/notification",
		Summary:     "List notification rules",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *ListNotificationsHandler) handle(ctx context.Context, input *ListNotificationsInput) (*ListNotificationsOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	rows, err := h.NotificationService.ListNotifications(ctx, ownerID)
	if err != nil {
		return nil, httperr.Domain(err, "failed to list notifications")
	}

	out := make([]Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromStorage(row))
	}
	return &ListNotificationsOutput{Body: ListNotificationsResponse{Notifications: out}}, nil
}
