// Package store provides the narrow document-store contract the POS core is
// written against: atomic whole-document reads and writes plus a
// read-modify-write update that aborts when another writer got in between.
// Anything offering those three operations can back the service.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrNotFound is returned by Get for a key that was never written.
	ErrNotFound = errors.New("store: document not found")

	// ErrConflict is returned by Update when the document changed between
	// the read and the conditional write. The caller decides whether that
	// is a user-facing conflict; the store never retries.
	ErrConflict = errors.New("store: document modified concurrently")
)

// UpdateFunc computes the next version of a document. prev is nil when the
// document does not exist yet. Returning an error aborts the update without
// writing.
type UpdateFunc func(prev json.RawMessage) (json.RawMessage, error)

type Store interface {
	// Get returns the current document, or ErrNotFound.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Put replaces the document unconditionally.
	Put(ctx context.Context, key string, value json.RawMessage) error

	// Update performs one optimistic read-modify-write cycle: read the
	// current document, apply fn, and write the result only if no other
	// writer touched the document in between (ErrConflict otherwise).
	Update(ctx context.Context, key string, fn UpdateFunc) (json.RawMessage, error)
}
