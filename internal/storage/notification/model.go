package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// RuleType selects what a notification rule watches.
type RuleType int8

const (
	RuleGeneric RuleType = iota
	RulePurchase // single expense at or above Threshold
	RuleBalance  // account balance at or below Threshold
	RuleBudget   // category spending at or above its budget ceiling
	RuleReminder
)

func (t RuleType) String() string {
	switch t {
	case RulePurchase:
		return "purchase"
	case RuleBalance:
		return "balance"
	case RuleBudget:
		return "budget"
	case RuleReminder:
		return "reminder"
	default:
		return "generic"
	}
}

func ParseRuleType(s string) (RuleType, error) {
	switch s {
	case "", "generic":
		return RuleGeneric, nil
	case "purchase":
		return RulePurchase, nil
	case "balance":
		return RuleBalance, nil
	case "budget":
		return RuleBudget, nil
	case "reminder":
		return RuleReminder, nil
	default:
		return 0, fmt.Errorf("unknown notification type %q", s)
	}
}

// Notification is a user-configured alert rule.
type Notification struct {
	ID         uuid.UUID        `db:"id"`
	OwnerID    uuid.UUID        `db:"owner_id"`
	CategoryID *uuid.UUID       `db:"category_id"`
	Type       RuleType         `db:"rule_type"`
	Title      string           `db:"title"`
	Message    string           `db:"message"`
	Threshold  *decimal.Decimal `db:"threshold"`
	Enabled    bool             `db:"enabled"`
	CreatedAt  time.Time        `db:"created_at"`
}

// NotificationCreate is the input for creating a new notification rule.
type NotificationCreate struct {
	OwnerID    uuid.UUID
	CategoryID *uuid.UUID
	Type       RuleType
	Title      string
	Message    string
	Threshold  *decimal.Decimal
}

// Table defines the interface for notification storage operations.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	Insert(ctx context.Context, create *NotificationCreate) (*Notification, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Notification, error)
	ListEnabled(ctx context.Context, ownerID uuid.UUID) ([]*Notification, error)
	SetEnabled(ctx context.Context, ownerID, id uuid.UUID, enabled bool) (bool, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}
