package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/subscription"
)

// Deps bundles what actions need to run. Balance-affecting work goes through
// the engine so every action gets the same locking and atomicity as a user
// request.
type Deps struct {
	Engine        *ledger.Engine
	Subscriptions subscription.Table
}

type IAction interface {
	Perform(ctx context.Context, deps *Deps) error
}
