package storage

import (
	"errors"

	"github.com/lib/pq"
)

// IsLockConflict reports whether err is a Postgres locking failure that the
// caller may retry: a detected deadlock, a serialization failure, or a lock
// that could not be obtained.
func IsLockConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}
