package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

// Scheduler periodically finds due subscriptions and enqueues a billing
// action for each. Billing itself runs on the operator workers.
type Scheduler struct {
	delegator     *OperatorDelegator
	subscriptions subscription.Table
	interval      time.Duration
	log           *logrus.Logger
}

func NewScheduler(delegator *OperatorDelegator, subscriptions subscription.Table, interval time.Duration, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		delegator:     delegator,
		subscriptions: subscriptions,
		interval:      interval,
		log:           log,
	}
}

// Run ticks until the context is cancelled. The first sweep happens
// immediately so restarts do not delay overdue billing by a full interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	now := time.Now()
	due, err := s.subscriptions.ListDue(ctx, now)
	if err != nil {
		s.log.WithError(err).Error("listing due subscriptions failed")
		return
	}

	for _, sub := range due {
		err := s.delegator.Process(ctx, &actions.BillSubscription{
			SubscriptionID: sub.ID,
			AsOf:           now,
		})
		if err != nil {
			s.log.WithError(err).WithField("subscriptionId", sub.ID).Error("billing subscription failed")
			continue
		}
		s.log.WithField("subscriptionId", sub.ID).Info("billed subscription")
	}
}
