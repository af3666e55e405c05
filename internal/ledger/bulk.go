package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// RowSpec is one row of a bulk import. A nil ID means create; a non-nil ID
// means replace that transaction's full field set.
type RowSpec struct {
	ID          *uuid.UUID
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Type        transaction.EntryType
	OccurredOn  time.Time
	Description string
	Method      transaction.Method
}

// RowError reports a failure for one row, by zero-based position in the
// submitted batch.
type RowError struct {
	Row     int
	Message string
}

// BulkResult summarizes a bulk import. When Errors is non-empty nothing was
// persisted.
type BulkResult struct {
	Created   int
	Updated   int
	Unchanged int
	Errors    []RowError
}

// BulkReconcile applies a batch of rows atomically. The whole batch is
// validated before anything touches storage; a single invalid row rejects the
// batch with per-row errors and no persisted changes. Update rows whose
// fields already match the stored transaction are counted as Unchanged and
// skip the balance adjustment entirely.
func (e *Engine) BulkReconcile(ctx context.Context, ownerID uuid.UUID, rows []RowSpec) (BulkResult, error) {
	var res BulkResult
	for i := range rows {
		if err := validateRow(&rows[i]); err != nil {
			res.Errors = append(res.Errors, RowError{Row: i, Message: err.Error()})
		}
	}
	if len(res.Errors) > 0 {
		return res, nil
	}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		return BulkResult{}, err
	}

	for i := range rows {
		row := &rows[i]
		if row.ID == nil {
			in := row.postInput()
			if _, err := e.post(ctx, tx, ownerID, &in); err != nil {
				_ = tx.Rollback()
				return rowFailure(i, err)
			}
			res.Created++
			continue
		}

		in := row.amendInput()
		_, didChange, err := e.amend(ctx, tx, ownerID, *row.ID, &in)
		if err != nil {
			_ = tx.Rollback()
			return rowFailure(i, err)
		}
		if didChange {
			res.Updated++
		} else {
			res.Unchanged++
		}
	}

	if err := tx.Commit(); err != nil {
		return BulkResult{}, err
	}
	return res, nil
}

func validateRow(row *RowSpec) error {
	if err := validateType(row.Type); err != nil {
		return err
	}
	if err := validateAmount(row.Amount); err != nil {
		return err
	}
	if err := validateOccurredOn(row.OccurredOn); err != nil {
		return err
	}
	return validateDescription(row.Description)
}

// rowFailure classifies an apply-phase error. Domain failures (a referenced
// entity missing, a validation slip) become a per-row error with the batch
// untouched; storage failures surface as-is.
func rowFailure(row int, err error) (BulkResult, error) {
	var verr *ValidationError
	if errors.Is(err, ErrNotFound) || errors.As(err, &verr) {
		return BulkResult{Errors: []RowError{{Row: row, Message: err.Error()}}}, nil
	}
	return BulkResult{}, err
}

func (row *RowSpec) postInput() PostInput {
	return PostInput{
		AccountID:   row.AccountID,
		CategoryID:  row.CategoryID,
		Amount:      row.Amount,
		Type:        row.Type,
		OccurredOn:  row.OccurredOn,
		Description: row.Description,
		Method:      row.Method,
	}
}

func (row *RowSpec) amendInput() AmendInput {
	return AmendInput{
		AccountID:   omitnull.FromPtr(row.AccountID),
		CategoryID:  omitnull.FromPtr(row.CategoryID),
		Amount:      omit.From(row.Amount),
		Type:        omit.From(row.Type),
		OccurredOn:  omit.From(row.OccurredOn),
		Description: omit.From(row.Description),
		Method:      omit.From(row.Method),
	}
}
