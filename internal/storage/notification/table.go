package notification

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
	"id", "owner_id", "category_id", "rule_type", "title", "message",
	"threshold", "enabled", "created_at",
}

type Reader struct {
	exec bob.Executor
}

var _ Table = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("notifications"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Notification]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Reader) Insert(ctx context.Context, create *NotificationCreate) (*Notification, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	q := psql.Insert(
		im.Into("notifications",
			"id", "owner_id", "category_id", "rule_type", "title", "message",
			"threshold", "enabled", "created_at"),
		im.Values(psql.Arg(
			id, create.OwnerID, create.CategoryID, int16(create.Type),
			create.Title, create.Message, create.Threshold, true, now)),
	)
	if _, err := bob.Exec(ctx, r.exec, q); err != nil {
		return nil, err
	}

	return &Notification{
		ID:         id,
		OwnerID:    create.OwnerID,
		CategoryID: create.CategoryID,
		Type:       create.Type,
		Title:      create.Title,
		Message:    create.Message,
		Threshold:  create.Threshold,
		Enabled:    true,
		CreatedAt:  now,
	}, nil
}

func (r *Reader) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Notification, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("notifications"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("created_at").Asc(),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Notification]())
}

func (r *Reader) ListEnabled(ctx context.Context, ownerID uuid.UUID) ([]*Notification, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("notifications"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("enabled").EQ(psql.Arg(true))),
	)
	return bob.All(ctx, r.exec, q, scan.StructMapper[*Notification]())
}

func (r *Reader) SetEnabled(ctx context.Context, ownerID, id uuid.UUID, enabled bool) (bool, error) {
	q := psql.Update(
		um.Table("notifications"),
		um.SetCol("enabled").ToArg(enabled),
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
		dm.From("notifications"),
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
