// Package dberr defines the shared error taxonomy used across
// bplusdb (spec.md §7): NotFound, SchemaViolation, DuplicateKey, and
// IOFailure. Callers test for these with errors.Is against the sentinel
// values; the constructors below just save call sites from repeating the
// same fmt.Errorf("...: %w", ...) wrapping.
package dberr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a missing key, table, or database. It is never
	// raised for normal control flow elsewhere in the module — lookups
	// return it (or an "absent" bool) rather than panicking.
	ErrNotFound = errors.New("not found")

	// ErrSchemaViolation marks a missing column, an unknown column, or
	// a type mismatch on insert or update. The mutation that triggered
	// it is always refused with state left unchanged.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrDuplicateKey marks an insert (or a PK-changing update) that
	// would collide with an existing primary key value.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrIOFailure marks a snapshot read or write failure.
	ErrIOFailure = errors.New("io failure")
)

// NotFound wraps ErrNotFound with context about what was missing.
func NotFound(what string) error {
	return &wrapped{msg: what, sentinel: ErrNotFound}
}

// Violation wraps ErrSchemaViolation with the reason a row or schema was
// rejected.
func Violation(reason string) error {
	return &wrapped{msg: reason, sentinel: ErrSchemaViolation}
}

// Duplicate wraps ErrDuplicateKey with the colliding key value.
func Duplicate(key any) error {
	return &wrapped{msg: fmt.Sprintf("primary key %v already present", key), sentinel: ErrDuplicateKey}
}

// IOFailure wraps ErrIOFailure with the underlying cause.
func IOFailure(op string, cause error) error {
	return &wrapped{msg: op, sentinel: ErrIOFailure, cause: cause}
}

type wrapped struct {
	msg      string
	sentinel error
	cause    error
}

func (w *wrapped) Error() string {
	if w.cause != nil {
		return w.msg + ": " + w.sentinel.Error() + ": " + w.cause.Error()
	}
	return w.msg + ": " + w.sentinel.Error()
}

func (w *wrapped) Unwrap() error {
	return w.sentinel
}

func (w *wrapped) Cause() error {
	return w.cause
}
