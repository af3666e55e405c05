package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "owner_id", "name", "account_type", "number",
	"balance", "starting_balance", "created_at",
}

type Reader struct {
	exec bob.Executor
}

var _ Table = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves an account by primary key. Returns nil when no row exists.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new account. Balance starts equal to the starting balance.
func (r *Reader) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	q := psql.Insert(
		im.Into("accounts",
			"id", "owner_id", "name", "account_type", "number",
			"balance", "starting_balance", "created_at"),
		im.Values(psql.Arg(
			id, create.OwnerID, create.Name, int16(create.Type), create.Number,
			create.StartingBalance, create.StartingBalance, now)),
	)
	if _, err := bob.Exec(ctx, r.exec, q); err != nil {
		return nil, err
	}

	return &Account{
		ID:              id,
		OwnerID:         create.OwnerID,
		Name:            create.Name,
		Type:            create.Type,
		Number:          create.Number,
		Balance:         create.StartingBalance,
		StartingBalance: create.StartingBalance,
		CreatedAt:       now,
	}, nil
}

// ListByOwner returns the owner's accounts matching the filter. Nil filter
// returns all. One extra row beyond the limit is fetched so callers can tell
// whether a next page exists.
func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter *AccountFilter) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	}
	if filter != nil {
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumEffects computes the signed sum of the account's transaction effects,
// income positive and expense negative. Used for reconciliation against the
// stored balance.
func (r *Reader) SumEffects(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	q := psql.Select(
		sm.Columns(psql.Raw(
			"coalesce(sum(case when entry_type = 0 then amount else -amount end), 0)")),
		sm.From("transactions"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(id))),
	)
	sum, err := bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}
