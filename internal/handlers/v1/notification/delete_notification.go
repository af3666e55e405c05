package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
)

// DeleteNotificationInput is the Huma input for deleting a notification rule.
type DeleteNotificationInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Notification rule UUID"`
}

// DeleteNotificationOutput is the Huma output for deleting a notification rule.
type DeleteNotificationOutput struct {
	Status int
}

// notificationDeleter is the interface for deleting notification rules.
type notificationDeleter interface {
	DeleteNotification(ctx context.Context, ownerID, id uuid.UUID) error
}

// DeleteNotificationHandler handles DELETE /v1/notification/{id}.
type DeleteNotificationHandler struct {
	NotificationService notificationDeleter
}

// NewDeleteNotificationHandler creates a new DeleteNotificationHandler.
func NewDeleteNotificationHandler(svc notificationDeleter) *DeleteNotificationHandler {
	return &DeleteNotificationHandler{NotificationService: svc}
}

// Register registers the delete notification endpoint with the Huma API.
func (h *DeleteNotificationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-notification",
		Method:      http.MethodDelete,
		Path:        "/v1/notification/{id}",
		Summary:     "Delete notification rule",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *DeleteNotificationHandler) handle(ctx context.Context, input *DeleteNotificationInput) (*DeleteNotificationOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	id, err := httperr.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.NotificationService.DeleteNotification(ctx, ownerID, id); err != nil {
		return nil, httperr.Domain(err, "failed to delete notification")
	}
	return &DeleteNotificationOutput{Status: http.StatusNoContent}, nil
}
