package service

import (
	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Transaction  *TransactionService
	Account      *AccountService
	Category     *CategoryService
	Subscription *SubscriptionService
	Budget       *BudgetService
	Notification *NotificationService
}

// NewService creates a new Service with the given storage and ledger engine.
func NewService(store *storage.Storage, engine *ledger.Engine) *Service {
	return &Service{
		Transaction:  NewTransactionService(store, engine),
		Account:      NewAccountService(store),
		Category:     NewCategoryService(store),
		Subscription: NewSubscriptionService(store),
		Budget:       NewBudgetService(store),
		Notification: NewNotificationService(store),
	}
}
