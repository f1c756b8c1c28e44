package services

import "errors"

// ErrNotFound covers both a missing entity and one the caller may not see.
// Handlers turn it into a 404 without distinguishing the two cases.
var ErrNotFound = errors.New("not found or access denied")

var (
	ErrEmailExists       = errors.New("email already exists")
	ErrUsernameExists    = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyMember     = errors.New("user is already a member")
	ErrCannotRemoveOwner = errors.New("cannot remove the project owner")
)
