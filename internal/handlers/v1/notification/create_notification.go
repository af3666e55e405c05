package notification

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage/notification"
)

// CreateNotificationBody is the request body for creating a notification rule.
type CreateNotificationBody struct {
	CategoryID string `json:"categoryID,omitempty" doc:"Category filter for purchase and budget rules"`
	Type       string `json:"type" required:"true" enum:"generic,purchase,balance,budget,reminder" doc:"Rule type"`
	Title      string `json:"title" required:"true" minLength:"1" doc:"Alert title"`
	Message    string `json:"message,omitempty" doc:"Alert body text"`
	Threshold  string `json:"threshold,omitempty" doc:"Decimal trigger threshold, required for purchase and balance rules"`
}

// CreateNotificationInput is the Huma input for creating a notification rule.
type CreateNotificationInput struct {
	OwnerID string `header:"X-Owner-ID" required:"true" doc:"Owner UUID"`
	Body    CreateNotificationBody
}

// CreateNotificationOutput is the Huma output for creating a notification rule.
type CreateNotificationOutput struct {
	Status int
	Body   Notification
}

// notificationCreator is the interface for creating notification rules.
type notificationCreator interface {
	CreateNotification(ctx context.Context, ownerID uuid.UUID, in service.NotificationCreateInput) (*notification.Notification, error)
}

// CreateNotificationHandler handles POST /v1/notification.
type CreateNotificationHandler struct {
	NotificationService notificationCreator
}

// NewCreateNotificationHandler creates a new CreateNotificationHandler.
func NewCreateNotificationHandler(svc notificationCreator) *CreateNotificationHandler {
	return &CreateNotificationHandler{NotificationService: svc}
}

// Register registers the create notification endpoint with the Huma API.
func (h *CreateNotificationHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-notification",
		Method:      http.MethodPost,
		Path:        "/v1/notification",
		Summary:     "Create notification rule",
		Description: "Creates an alert rule evaluated after transactions post.",
		Tags:        []string{"Notifications"},
	}, h.handle)
}

func parseCreateNotificationInput(input *CreateNotificationInput) (service.NotificationCreateInput, error) {
	var categoryID *uuid.UUID
	if input.Body.CategoryID != "" {
		id, err := uuid.FromString(input.Body.CategoryID)
		if err != nil {
			return service.NotificationCreateInput{}, huma.NewError(http.StatusBadRequest, "invalid categoryID", err)
		}
		categoryID = &id
	}
	ruleType, err := notification.ParseRuleType(input.Body.Type)
	if err != nil {
		return service.NotificationCreateInput{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}
	var threshold *decimal.Decimal
	if input.Body.Threshold != "" {
		d, err := decimal.NewFromString(input.Body.Threshold)
		if err != nil {
			return service.NotificationCreateInput{}, huma.NewError(http.StatusBadRequest, "invalid threshold", err)
		}
		threshold = &d
	}

	return service.NotificationCreateInput{
		CategoryID: categoryID,
		Type:       ruleType,
		Title:      input.Body.Title,
		Message:    input.Body.Message,
		Threshold:  threshold,
	}, nil
}

func (h *CreateNotificationHandler) handle(ctx context.Context, input *CreateNotificationInput) (*CreateNotificationOutput, error) {
	ownerID, err := httperr.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}
	in, err := parseCreateNotificationInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.NotificationService.CreateNotification(ctx, ownerID, in)
	if err != nil {
		return nil, httperr.Domain(err, "failed to create notification")
	}

	return &CreateNotificationOutput{
		Status: http.StatusCreated,
		Body:   fromStorage(created),
	}, nil
}
