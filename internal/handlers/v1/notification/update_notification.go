package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
)

// UpdateNotificationBody enables or disables a notification rule.
type UpdateNotificationBody struct {
	Enabled bool `json:"enabled" doc:"False silences the rule without deleting it"`
}

// UpdateNotificationInput is the Huma input for toggling a notification rule.
type UpdateNotificationInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	ID      string `path:"id" doc:"Notification rule UUID"`
	Body    UpdateNotificationBody
}

// UpdateNotificationOutput is the Huma output for toggling a notification rule.
type UpdateNotificationOutput struct {
	Status int
}

// notificationToggler is the interface for enabling and disabling rules.
type notificationToggler interface {
	SetEnabled(ctx context.Context, ownerID, id uuid.UUID, enabled bool) error
}

// UpdateNotificationHandler handles PATCH /v1/notification/{id}.
type UpdateNotificationHandler struct {
	NotificationService notificationToggler
}

// NewUpdateNotificationHandler creates a new UpdateNotificationHandler.
func NewUpdateNotificationHandler(svc notificationToggler) *UpdateNotificationHandler {
	return &UpdateNotificationHandler{NotificationService: svc}
}

// Register registers the update notification endpoint with the Huma API.
func (h *UpdateNotificationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-notification",
		Method:      http.MethodPatch,
		Path:        "/v1/notification/{id}",
		Summary:     "Enable or disable notification rule",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func (h *UpdateNotificationHandler) handle(ctx context.Context, input *UpdateNotificationInput) (*UpdateNotificationOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	id, err := httperr.ID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.NotificationService.SetEnabled(ctx, ownerID, id, input.Body.Enabled); err != nil {
		return nil, httperr.Domain(err, "failed to update notification")
	}
	return &UpdateNotificationOutput{Status: http.StatusNoContent}, nil
}
