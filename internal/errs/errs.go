// Package errs contains sentinel errors shared across services and handlers
// for stable error-to-status mapping.
package errs

import "errors"

var (
	// ErrUnauthorized covers both unknown email and wrong password so callers
	// cannot distinguish the two.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated account does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the target resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken indicates a registration against an email already in use.
	ErrEmailTaken = errors.New("email already in use")

	// ErrNothingToUpdate indicates a partial update carrying no fields.
	ErrNothingToUpdate = errors.New("nothing to update")
)
