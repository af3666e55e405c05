package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// BillSubscription posts the expense for one due subscription and advances
// its schedule. A subscription that fell several cycles behind is caught up
// one transaction per cycle so the ledger reflects every missed billing.
type BillSubscription struct {
	SubscriptionID uuid.UUID
	AsOf           time.Time

	IAction
}

func (b *BillSubscription) Perform(ctx context.Context, deps *Deps) error {
	sub, err := deps.Subscriptions.FindByID(ctx, b.SubscriptionID)
	if err != nil {
		return err
	}
	if sub == nil || !sub.Active {
		return nil
	}

	for !sub.NextBillingOn.After(b.AsOf) {
		billedOn := sub.NextBillingOn
		_, err := deps.Engine.Post(ctx, sub.OwnerID, ledger.PostInput{
			AccountID:   sub.AccountID,
			CategoryID:  sub.CategoryID,
			Amount:      sub.Amount,
			Type:        transaction.EntryExpense,
			OccurredOn:  billedOn,
			Description: sub.Name,
			Method:      transaction.MethodTransfer,
		})
		if err != nil {
			return err
		}

		next := sub.Advance()
		if err := deps.Subscriptions.UpdateSchedule(ctx, sub.ID, next, billedOn); err != nil {
			return err
		}
		sub.NextBillingOn = next
		sub.LastBilledOn = &billedOn
	}
	return nil
}
