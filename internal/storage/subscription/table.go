package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "owner_id", "account_id", "category_id", "name", "amount",
	"frequency", "billing_day", "next_billing_on", "last_billed_on",
	"active", "created_at",
}

type Reader struct {
	exec bob.Executor
}

var _ Table = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("subscriptions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Subscription]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) Insert(ctx context.Context, create *SubscriptionCreate) (*Subscription, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	q := psql.Insert(
		im.Into("subscriptions",
			"id", "owner_id", "account_id", "category_id", "name", "amount",
			"frequency", "billing_day", "next_billing_on", "active", "created_at"),
		im.Values(psql.Arg(
			id, create.OwnerID, create.AccountID, create.CategoryID, create.Name,
			create.Amount, int16(create.Frequency), create.BillingDay,
			create.NextBillingOn, true, now)),
	)
	if _, err := bob.Exec(ctx, r.exec, q); err != nil {
		return nil, err
	}

	return &Subscription{
		ID:            id,
		OwnerID:       create.OwnerID,
		AccountID:     create.AccountID,
		CategoryID:    create.CategoryID,
		Name:          create.Name,
		Amount:        create.Amount,
		Frequency:     create.Frequency,
		BillingDay:    create.BillingDay,
		NextBillingOn: create.NextBillingOn,
		Active:        true,
		CreatedAt:     now,
	}, nil
}

func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Subscription, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("subscriptions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("name").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Subscription]())
}

// ListDue returns active subscriptions across all owners whose next billing
// date is on or before asOf. The billing workers consume this.
func (r *Reader) ListDue(ctx context.Context, asOf time.Time) ([]*Subscription, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("subscriptions"),
		sm.Where(psql.Quote("active").EQ(psql.Arg(true))),
		sm.Where(psql.Quote("next_billing_on").LTE(psql.Arg(asOf))),
		sm.OrderBy("next_billing_on").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Subscription]())
}

func (r *Reader) UpdateSchedule(ctx context.Context, id uuid.UUID, next time.Time, last time.Time) error {
	q := psql.Update(
		um.Table("subscriptions"),
		um.SetCol("next_billing_on").ToArg(next),
		um.SetCol("last_billed_on").ToArg(last),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, r.exec, q)
	return err
}

func (r *Reader) SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) (bool, error) {
	q := psql.Update(
		um.Table("subscriptions"),
		um.SetCol("active").ToArg(active),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	res, err := bob.Exec(ctx, r.exec, q)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Reader) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From("subscriptions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	res, err := bob.Exec(ctx, r.exec, q)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
