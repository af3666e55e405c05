package subscription

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

// Subscription is the API response model for a subscription.
type Subscription struct {
	ID            string  `json:"id" doc:"Subscription UUID"`
	AccountID     *string `json:"accountID,omitempty" doc:"Account charged on each billing"`
	CategoryID    *string `json:"categoryID,omitempty" doc:"Category assigned to generated transactions"`
	Name          string  `json:"name" doc:"Subscription name"`
	Amount        string  `json:"amount" doc:"Decimal amount billed each cycle"`
	Frequency     string  `json:"frequency" doc:"Billing frequency: weekly, monthly or yearly"`
	BillingDay    int     `json:"billingDay" doc:"Day of week (1-7) or day of month (1-31)"`
	NextBillingOn string  `json:"nextBillingOn" doc:"RFC3339 date of the next billing"`
	LastBilledOn  *string `json:"lastBilledOn,omitempty" doc:"RFC3339 date of the last billing"`
	Active        bool    `json:"active" doc:"False while billing is paused"`
}

func fromStorage(s *subscription.Subscription) Subscription {
	out := Subscription{
		ID:            s.ID.String(),
		AccountID:     uuidString(s.AccountID),
		CategoryID:    uuidString(s.CategoryID),
		Name:          s.Name,
		Amount:        s.Amount.String(),
		Frequency:     s.Frequency.String(),
		BillingDay:    int(s.BillingDay),
		NextBillingOn: s.NextBillingOn.Format(time.RFC3339),
		Active:        s.Active,
	}
	if s.LastBilledOn != nil {
		last := s.LastBilledOn.Format(time.RFC3339)
		out.LastBilledOn = &last
	}
	return out
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
