package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

// SubscriptionCreateInput is the input for creating a subscription.
type SubscriptionCreateInput struct {
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Frequency  subscription.Frequency
	BillingDay int16
}

// SubscriptionService handles recurring payment schedules. Billing itself
// runs in the operator; this service owns the CRUD surface.
type SubscriptionService struct {
	storage *storage.Storage
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(store *storage.Storage) *SubscriptionService {
	return &SubscriptionService{storage: store}
}

func (s *SubscriptionService) CreateSubscription(ctx context.Context, ownerID uuid.UUID, in SubscriptionCreateInput) (*subscription.Subscription, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &ledger.ValidationError{Field: "name", Message: "is required"}
	}
	if in.Amount.Sign() <= 0 || !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, &ledger.ValidationError{Field: "amount", Message: "must be a positive amount with at most 2 decimal places"}
	}
	if err := validateBillingDay(in.Frequency, in.BillingDay); err != nil {
		return nil, err
	}

	return s.storage.Subscriptions.Insert(ctx, &subscription.SubscriptionCreate{
		OwnerID:       ownerID,
		AccountID:     in.AccountID,
		CategoryID:    in.CategoryID,
		Name:          in.Name,
		Amount:        in.Amount,
		Frequency:     in.Frequency,
		BillingDay:    in.BillingDay,
		NextBillingOn: subscription.NextOccurrence(in.Frequency, in.BillingDay, time.Now()),
	})
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, ownerID, id uuid.UUID) (*subscription.Subscription, error) {
	row, err := s.storage.Subscriptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.OwnerID != ownerID {
		return nil, fmt.Errorf("subscription %s: %w", id, ledger.ErrNotFound)
	}
	return row, nil
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, ownerID uuid.UUID) ([]*subscription.Subscription, error) {
	return s.storage.Subscriptions.ListByOwner(ctx, ownerID)
}

// SetActive pauses or resumes billing for a subscription.
func (s *SubscriptionService) SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) error {
	updated, err := s.storage.Subscriptions.SetActive(ctx, ownerID, id, active)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("subscription %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}

func (s *SubscriptionService) DeleteSubscription(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.storage.Subscriptions.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("subscription %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}

func validateBillingDay(freq subscription.Frequency, day int16) error {
	switch freq {
	case subscription.FrequencyWeekly:
		if day < 1 || day > 7 {
			return &ledger.ValidationError{Field: "billingDay", Message: "must be 1 through 7 for weekly subscriptions"}
		}
	case subscription.FrequencyMonthly:
		if day < 1 || day > 31 {
			return &ledger.ValidationError{Field: "billingDay", Message: "must be 1 through 31 for monthly subscriptions"}
		}
	case subscription.FrequencyYearly:
		if day < 1 || day > 31 {
			return &ledger.ValidationError{Field: "billingDay", Message: "must be 1 through 31 for yearly subscriptions"}
		}
	default:
		return &ledger.ValidationError{Field: "frequency", Message: "must be weekly, monthly or yearly"}
	}
	return nil
}
