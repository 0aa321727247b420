// Package service holds the account and task use cases. Stores, hashing,
// tokens, caching and event publishing are injected at construction.
package service

import "errors"

var (
	// ErrDuplicateEmail is returned by Register when the email is taken.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCategory is returned by Create for a category outside models.Categories.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrForbidden is returned by Delete when the caller does not own the task.
	ErrForbidden = errors.New("task belongs to another user")
)
