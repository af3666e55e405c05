// Package notification implements the HTTP endpoints for alert rules.
package notification

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/storage/notification"
)

// Notification is the wire representation of an alert rule.
type Notification struct {
	ID         string  `json:"id" doc:"Notification rule UUID"`
	CategoryID *string `json:"categoryId,omitempty" doc:"Category filter for purchase and budget rules"`
	Type       string  `json:"type" doc:"Rule type (generic, purchase, balance, budget, reminder)"`
	Title      string  `json:"title"`
	Message    string  `json:"message,omitempty"`
	Threshold  *string `json:"threshold,omitempty" doc:"Decimal trigger threshold"`
	Enabled    bool    `json:"enabled"`
	CreatedAt  string  `json:"createdAt"`
}

func fromStorage(row *notification.Notification) Notification {
	out := Notification{
		ID:        row.ID.String(),
		Type:      row.Type.String(),
		Title:     row.Title,
		Message:   row.Message,
		Enabled:   row.Enabled,
		CreatedAt: row.CreatedAt.Format(time.RFC3339),
	}
	if row.CategoryID != nil {
		s := row.CategoryID.String()
		out.CategoryID = &s
	}
	if row.Threshold != nil {
		s := row.Threshold.String()
		out.Threshold = &s
	}
	return out
}
