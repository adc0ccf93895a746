package services

import "errors"

var (
	// ErrEmptyOrder rejects commits and payments with no line items.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrTableConflict means another device claimed or modified the table
	// since the caller last read it. The caller must re-open the table and
	// decide; the service never retries on its own.
	ErrTableConflict = errors.New("table was taken or modified by someone else")

	// ErrStoreUnavailable means the backing store could not be reached and
	// the best-effort fallback failed too.
	ErrStoreUnavailable = errors.New("store unavailable, changes not saved")

	// ErrTableNotOccupied rejects a payment on a free table.
	ErrTableNotOccupied = errors.New("table is not occupied")

	// ErrPartialClose means the sale was recorded in the history log but
	// the table release write failed. The sale is safe; the table must be
	// released manually (retry the release, not the payment).
	ErrPartialClose = errors.New("sale recorded but table release failed")
)
