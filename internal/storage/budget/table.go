package budget

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
	"github.com/stephenafamo/scan"
)

var columns = []any{"id", "owner_id", "category_id", "ceiling", "period", "created_at"}

type Reader struct {
	exec bob.Executor
}

var _ Table = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) Insert(ctx context.Context, create *BudgetCreate) (*Budget, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	q := psql.Insert(
		im.Into("budgets", "id", "owner_id", "category_id", "ceiling", "period", "created_at"),
		im.Values(psql.Arg(id, create.OwnerID, create.CategoryID, create.Ceiling, int16(create.Period), now)),
	)
	if _, err := bob.Exec(ctx, r.exec, q); err != nil {
		return nil, err
	}

	return &Budget{
		ID:         id,
		OwnerID:    create.OwnerID,
		CategoryID: create.CategoryID,
		Ceiling:    create.Ceiling,
		Period:     create.Period,
		CreatedAt:  now,
	}, nil
}

func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("created_at").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Budget]())
}

func (r *Reader) ListByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("budgets"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("category_id").EQ(psql.Arg(categoryID))),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Budget]())
}

func (r *Reader) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From("budgets"),
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
