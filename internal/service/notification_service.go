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
	"github.com/carson-networks/finance-tracker/internal/storage/notification"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// NotificationCreateInput is the input for creating a notification rule.
type NotificationCreateInput struct {
	CategoryID *uuid.UUID
	Type       notification.RuleType
	Title      string
	Message    string
	Threshold  *decimal.Decimal
}

// Alert is a notification rule that fired for a particular event.
type Alert struct {
	RuleID uuid.UUID
	Type   notification.RuleType
	Title  string
	Detail string
}

// NotificationService handles alert rules and their evaluation.
type NotificationService struct {
	storage *storage.Storage
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store *storage.Storage) *NotificationService {
	return &NotificationService{storage: store}
}

func (s *NotificationService) CreateNotification(ctx context.Context, ownerID uuid.UUID, in NotificationCreateInput) (*notification.Notification, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &ledger.ValidationError{Field: "title", Message: "is required"}
	}
	switch in.Type {
	case notification.RulePurchase, notification.RuleBalance:
		if in.Threshold == nil {
			return nil, &ledger.ValidationError{Field: "threshold", Message: "is required for purchase and balance rules"}
		}
	}

	return s.storage.Notifications.Insert(ctx, &notification.NotificationCreate{
		OwnerID:    ownerID,
		CategoryID: in.CategoryID,
		Type:       in.Type,
		Title:      in.Title,
		Message:    in.Message,
		Threshold:  in.Threshold,
	})
}

func (s *NotificationService) GetNotification(ctx context.Context, ownerID, id uuid.UUID) (*notification.Notification, error) {
	row, err := s.storage.Notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.OwnerID != ownerID {
		return nil, fmt.Errorf("notification %s: %w", id, ledger.ErrNotFound)
	}
	return row, nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, ownerID uuid.UUID) ([]*notification.Notification, error) {
	return s.storage.Notifications.ListByOwner(ctx, ownerID)
}

func (s *NotificationService) SetEnabled(ctx context.Context, ownerID, id uuid.UUID, enabled bool) error {
	updated, err := s.storage.Notifications.SetEnabled(ctx, ownerID, id, enabled)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("notification %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, ownerID, id uuid.UUID) error {
	deleted, err := s.storage.Notifications.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("notification %s: %w", id, ledger.ErrNotFound)
	}
	return nil
}

// Evaluate runs the owner's enabled rules against a freshly posted
// transaction. newBalance is the linked account's balance after the post, or
// nil for an unlinked transaction. Evaluation happens after commit, so a
// fired alert never blocks the post itself.
func (s *NotificationService) Evaluate(ctx context.Context, ownerID uuid.UUID, txn *Transaction, newBalance *decimal.Decimal) ([]Alert, error) {
	rules, err := s.storage.Notifications.ListEnabled(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var alerts []Alert
	for _, rule := range rules {
		fired, detail, err := s.evaluateRule(ctx, ownerID, rule, txn, newBalance)
		if err != nil {
			return nil, err
		}
		if fired {
			alerts = append(alerts, Alert{
				RuleID: rule.ID,
				Type:   rule.Type,
				Title:  rule.Title,
				Detail: detail,
			})
		}
	}
	return alerts, nil
}

func (s *NotificationService) evaluateRule(ctx context.Context, ownerID uuid.UUID, rule *notification.Notification, txn *Transaction, newBalance *decimal.Decimal) (bool, string, error) {
	switch rule.Type {
	case notification.RulePurchase:
		if txn.Type != transaction.EntryExpense || rule.Threshold == nil {
			return false, "", nil
		}
		if rule.CategoryID != nil && !matchesCategory(rule.CategoryID, txn.CategoryID) {
			return false, "", nil
		}
		if txn.Amount.GreaterThanOrEqual(*rule.Threshold) {
			return true, fmt.Sprintf("expense of %s reached the %s threshold", txn.Amount, rule.Threshold), nil
		}
	case notification.RuleBalance:
		if newBalance == nil || rule.Threshold == nil {
			return false, "", nil
		}
		if newBalance.LessThanOrEqual(*rule.Threshold) {
			return true, fmt.Sprintf("balance %s dropped to the %s threshold", newBalance, rule.Threshold), nil
		}
	case notification.RuleBudget:
		if txn.Type != transaction.EntryExpense || txn.CategoryID == nil {
			return false, "", nil
		}
		if rule.CategoryID != nil && !matchesCategory(rule.CategoryID, txn.CategoryID) {
			return false, "", nil
		}
		return s.evaluateBudgets(ctx, ownerID, *txn.CategoryID, txn.OccurredOn)
	}
	return false, "", nil
}

func (s *NotificationService) evaluateBudgets(ctx context.Context, ownerID, categoryID uuid.UUID, at time.Time) (bool, string, error) {
	budgets, err := s.storage.Budgets.ListByCategory(ctx, ownerID, categoryID)
	if err != nil {
		return false, "", err
	}
	for _, b := range budgets {
		start, end := PeriodWindow(b.Period, at)
		spent, err := s.storage.Transactions.SumExpenses(ctx, ownerID, categoryID, start, end)
		if err != nil {
			return false, "", err
		}
		if spent.GreaterThan(b.Ceiling) {
			return true, fmt.Sprintf("%s spending of %s exceeded the %s ceiling", b.Period, spent, b.Ceiling), nil
		}
	}
	return false, "", nil
}

func matchesCategory(want, got *uuid.UUID) bool {
	return got != nil && *got == *want
}
