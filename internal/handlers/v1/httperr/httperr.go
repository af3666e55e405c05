// Package httperr maps domain errors onto HTTP status codes so every
// endpoint reports validation failures, missing records and lock conflicts
// the same way.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/ledger"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// Domain converts a service or engine error into a huma error. Validation
// failures become 422, missing or foreign-owned records 404, lock conflicts
// 409, and anything else a 500 carrying msg.
func Domain(err error, msg string) error {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.NewError(http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return huma.NewError(http.StatusNotFound, err.Error())
	case storage.IsLockConflict(err):
		return huma.NewError(http.StatusConflict, "the record was modified concurrently, retry the request")
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}

// OwnerID parses the X-Owner-ID header value.
func OwnerID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid X-Owner-ID", err)
	}
	return id, nil
}

// ID parses a UUID path parameter.
func ID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return id, nil
}
