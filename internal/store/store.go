// Package store wraps the SQL queries behind small per-resource structs so
// the handlers stay request-shaped. Every operation is a single synchronous
// round-trip; concurrent writes resolve last-write-wins at the database.
package store

import (
	"errors"
)

var (
	// ErrNotFound covers both "no such row" and "not owned by the caller":
	// ownership-filtered lookups use a single id+owner predicate so the two
	// cases are indistinguishable to the caller.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned when a registration hits the unique email
	// index.
	ErrEmailTaken = errors.New("email already registered")
)
