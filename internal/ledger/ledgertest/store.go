// Package ledgertest provides an in-memory ledger.Store for tests. Row locks
// behave like SELECT ... FOR UPDATE: a lock taken by FindByIDForUpdate is held
// until the owning Tx commits or rolls back, and writes are invisible to other
// transactions until commit.
package ledgertest

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage/account"
	"github.com/carson-networks/finance-tracker/internal/storage/category"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

type Store struct {
	mu     sync.Mutex
	cond   *sync.Cond
	locked map[uuid.UUID]bool

	accounts     map[uuid.UUID]*account.Account
	transactions map[uuid.UUID]*transaction.Transaction
	categories   map[uuid.UUID]*category.Category
}

func NewStore() *Store {
	s := &Store{
		locked:       map[uuid.UUID]bool{},
		accounts:     map[uuid.UUID]*account.Account{},
		transactions: map[uuid.UUID]*transaction.Transaction{},
		categories:   map[uuid.UUID]*category.Category{},
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *Store) Begin(ctx context.Context) (ledger.Tx, error) {
	return &memTx{
		store:    s,
		held:     map[uuid.UUID]bool{},
		accounts: map[uuid.UUID]*account.Account{},
		updated:  map[uuid.UUID]*transaction.Transaction{},
		deleted:  map[uuid.UUID]bool{},
	}, nil
}

// AddAccount seeds an account directly, bypassing any transaction.
func (s *Store) AddAccount(a account.Account) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID.IsNil() {
		a.ID = uuid.Must(uuid.NewV4())
	}
	s.accounts[a.ID] = &a
	return a.ID
}

// AddCategory seeds a category directly.
func (s *Store) AddCategory(c category.Category) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID.IsNil() {
		c.ID = uuid.Must(uuid.NewV4())
	}
	s.categories[c.ID] = &c
	return c.ID
}

// Account returns a copy of the committed account row, or nil.
func (s *Store) Account(id uuid.UUID) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

// Transaction returns a copy of the committed transaction row, or nil.
func (s *Store) Transaction(id uuid.UUID) *transaction.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

// TransactionCount returns the number of committed transaction rows.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

// EffectSum returns the committed sum of signed effects against an account.
func (s *Store) EffectSum(accountID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Decimal{}
	for _, t := range s.transactions {
		if t.AccountID != nil && *t.AccountID == accountID {
			sum = sum.Add(ledger.Effect(t.Type, t.Amount))
		}
	}
	return sum
}

// acquire blocks until the row lock for id is free, then takes it for tx.
// Reacquiring a lock the same tx already holds is a no-op.
func (s *Store) acquire(tx *memTx, id uuid.UUID) {
	if tx.held[id] {
		return
	}
	s.mu.Lock()
	for s.locked[id] {
		s.cond.Wait()
	}
	s.locked[id] = true
	s.mu.Unlock()
	tx.held[id] = true
}

type memTx struct {
	store *Store
	held  map[uuid.UUID]bool
	done  bool

	accounts map[uuid.UUID]*account.Account
	inserted []*transaction.Transaction
	updated  map[uuid.UUID]*transaction.Transaction
	deleted  map[uuid.UUID]bool
}

func (tx *memTx) Accounts() ledger.AccountTx         { return (*accountTx)(tx) }
func (tx *memTx) Transactions() ledger.TransactionTx { return (*transactionTx)(tx) }
func (tx *memTx) Categories() ledger.CategoryTx      { return (*categoryTx)(tx) }

func (tx *memTx) Commit() error {
	s := tx.store
	s.mu.Lock()
	for id, a := range tx.accounts {
		s.accounts[id] = a
	}
	for _, t := range tx.inserted {
		s.transactions[t.ID] = t
	}
	for id, t := range tx.updated {
		s.transactions[id] = t
	}
	for id := range tx.deleted {
		delete(s.transactions, id)
	}
	tx.releaseLocked()
	s.mu.Unlock()
	return nil
}

func (tx *memTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.store.mu.Lock()
	tx.releaseLocked()
	tx.store.mu.Unlock()
	return nil
}

// releaseLocked frees the tx's row locks. Caller holds store.mu.
func (tx *memTx) releaseLocked() {
	for id := range tx.held {
		delete(tx.store.locked, id)
	}
	tx.held = map[uuid.UUID]bool{}
	tx.done = true
	tx.store.cond.Broadcast()
}

type accountTx memTx

func (a *accountTx) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a.store.acquire((*memTx)(a), id)
	if cur, ok := a.accounts[id]; ok {
		cp := *cur
		return &cp, nil
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	cur, ok := a.store.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *cur
	return &cp, nil
}

func (a *accountTx) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	a.store.acquire((*memTx)(a), id)
	cur, ok := a.accounts[id]
	if !ok {
		a.store.mu.Lock()
		committed := a.store.accounts[id]
		a.store.mu.Unlock()
		cp := *committed
		cur = &cp
		a.accounts[id] = cur
	}
	cur.Balance = balance
	return nil
}

type transactionTx memTx

func (t *transactionTx) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	t.store.acquire((*memTx)(t), id)
	if t.deleted[id] {
		return nil, nil
	}
	if cur, ok := t.updated[id]; ok {
		cp := *cur
		return &cp, nil
	}
	for _, ins := range t.inserted {
		if ins.ID == id {
			cp := *ins
			return &cp, nil
		}
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	cur, ok := t.store.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *cur
	return &cp, nil
}

func (t *transactionTx) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	now := time.Now()
	txn := &transaction.Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		OwnerID:     create.OwnerID,
		AccountID:   create.AccountID,
		CategoryID:  create.CategoryID,
		Amount:      create.Amount,
		Type:        create.Type,
		OccurredOn:  create.OccurredOn,
		Description: create.Description,
		Method:      create.Method,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.inserted = append(t.inserted, txn)
	return txn, nil
}

func (t *transactionTx) Update(ctx context.Context, id uuid.UUID, update *transaction.TransactionUpdate) error {
	cur, err := t.FindByIDForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return nil
	}
	cur.AccountID = update.AccountID
	cur.CategoryID = update.CategoryID
	cur.Amount = update.Amount
	cur.Type = update.Type
	cur.OccurredOn = update.OccurredOn
	cur.Description = update.Description
	cur.Method = update.Method
	cur.UpdatedAt = time.Now()
	t.updated[id] = cur
	return nil
}

func (t *transactionTx) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	cur, err := t.FindByIDForUpdate(ctx, id)
	if err != nil {
		return false, err
	}
	if cur == nil {
		return false, nil
	}
	t.deleted[id] = true
	return true, nil
}

type categoryTx memTx

func (c *categoryTx) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	cur, ok := c.store.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *cur
	return &cp, nil
}
