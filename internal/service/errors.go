// Package service implements the memo board's business rules, delegating
// persistence to repositories.
package service

import "errors"

// Sentinel errors surfaced by the services. The handler layer maps them
// to HTTP statuses.
var (
	// ErrNotFound means the requested memo does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller is neither the owner nor an admin.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means the username is already taken.
	ErrConflict = errors.New("username already exists")
	// ErrRegistrationClosed means the registration gate is shut.
	ErrRegistrationClosed = errors.New("registration is closed")
	// ErrBadCredentials means no user matches the supplied username and
	// password. Unknown username and wrong password are indistinguishable.
	ErrBadCredentials = errors.New("bad credentials")
	// ErrSelfDelete means an admin tried to delete their own account.
	ErrSelfDelete = errors.New("cannot delete own account")
	// ErrEmptyContent means a memo was posted with no content.
	ErrEmptyContent = errors.New("empty content")
)
