package category

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

var columns = []any{"id", "owner_id", "name", "kind", "created_at"}

type Reader struct {
	exec bob.Executor
}

var _ Table = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Category]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) Insert(ctx context.Context, create *CategoryCreate) (*Category, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	q := psql.Insert(
		im.Into("categories", "id", "owner_id", "name", "kind", "created_at"),
		im.Values(psql.Arg(id, create.OwnerID, create.Name, int16(create.Kind), now)),
	)
	if _, err := bob.Exec(ctx, r.exec, q); err != nil {
		return nil, err
	}

	return &Category{
		ID:        id,
		OwnerID:   create.OwnerID,
		Name:      create.Name,
		Kind:      create.Kind,
		CreatedAt: now,
	}, nil
}

func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Category, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("name").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Category]())
}

// Delete removes an owner's category, reporting whether a row was deleted.
// Transactions referencing it keep a dangling NULL via the FK's SET NULL.
func (r *Reader) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	q := psql.Delete(
		dm.From("categories"),
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
