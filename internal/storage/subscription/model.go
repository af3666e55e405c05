package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type Frequency int8

const (
	FrequencyWeekly Frequency = iota
	FrequencyMonthly
	FrequencyYearly
)

func (f Frequency) String() string {
	switch f {
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	case FrequencyYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "weekly":
		return FrequencyWeekly, nil
	case "monthly":
		return FrequencyMonthly, nil
	case "yearly":
		return FrequencyYearly, nil
	default:
		return 0, fmt.Errorf("unknown frequency %q", s)
	}
}

// Subscription produces expense transactions on a schedule. Each generated
// transaction goes through the same ledger path as manual entry.
type Subscription struct {
	ID            uuid.UUID       `db:"id"`
	OwnerID       uuid.UUID       `db:"owner_id"`
	AccountID     *uuid.UUID      `db:"account_id"`
	CategoryID    *uuid.UUID      `db:"category_id"`
	Name          string          `db:"name"`
	Amount        decimal.Decimal `db:"amount"`
	Frequency     Frequency       `db:"frequency"`
	BillingDay    int16           `db:"billing_day"`
	NextBillingOn time.Time       `db:"next_billing_on"`
	LastBilledOn  *time.Time      `db:"last_billed_on"`
	Active        bool            `db:"active"`
	CreatedAt     time.Time       `db:"created_at"`
}

// SubscriptionCreate is the input for creating a new subscription.
type SubscriptionCreate struct {
	OwnerID       uuid.UUID
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	Name          string
	Amount        decimal.Decimal
	Frequency     Frequency
	BillingDay    int16
	NextBillingOn time.Time
}

// Table defines the interface for subscription storage operations.
type Table interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	Insert(ctx context.Context, create *SubscriptionCreate) (*Subscription, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Subscription, error)
	ListDue(ctx context.Context, asOf time.Time) ([]*Subscription, error)
	UpdateSchedule(ctx context.Context, id uuid.UUID, next time.Time, last time.Time) error
	SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) (bool, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}
