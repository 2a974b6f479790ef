package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors handlers switch on. Everything else coming out of the store
// is a backend failure and surfaces to the caller as retryable.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// translate maps driver-level failures onto the sentinel kinds.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return ErrConflict
		case "foreign_key_violation":
			return ErrNotFound
		}
	}
	return err
}
