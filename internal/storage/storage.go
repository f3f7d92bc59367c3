// Package storage provides the persistence port used by the cart and auth
// stores. Records are small named JSON documents ("cart", "auth") written in
// full on every mutation and read back verbatim at startup, the client-side
// analog of browser local storage.
package storage

import "errors"

// ErrNotFound is returned by Read when no record with the given name exists.
var ErrNotFound = errors.New("storage: record not found")

// Store reads and writes named JSON documents.
//
// Write must be atomic at the record level: a reader never observes a
// half-written document. Implementations are safe for concurrent use.
type Store interface {
	// Read unmarshals the named record into v. Returns ErrNotFound if the
	// record has never been written.
	Read(name string, v any) error

	// Write marshals v and replaces the named record.
	Write(name string, v any) error

	// Delete removes the named record. Deleting a missing record is not an
	// error.
	Delete(name string) error
}
