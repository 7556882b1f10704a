package backend

import (
	"errors"

	"github.com/morning-briefings/briefctl/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = utils.ErrInvalidEmail
	// ErrEmptyPassword is returned when a password is empty.
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can
	// hash.
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
	// ErrInvalidPattern is returned when a region filter can't be compiled.
	ErrInvalidPattern = errors.New("invalid region pattern")
)
