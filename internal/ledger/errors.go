package ledger

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// ErrNotFound marks lookups for entities that do not exist or belong to a
// different owner. The two cases are deliberately indistinguishable so an
// owner cannot probe for other owners' IDs.
var ErrNotFound = errors.New("not found")

// ValidationError reports a single input field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}
