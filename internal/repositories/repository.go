package repository

import (
	"errors"
	"strings"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")

	// ErrConflict reports a conditional write that matched no rows: the
	// record changed (or reached a terminal state) since it was read.
	ErrConflict = errors.New("conditional update conflict")
)

// The sqlite driver surfaces constraint failures as plain errors, so the
// unique (gig, bidder) index is matched on message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
