package domain

import "errors"

var (
	// ErrInvalidCredentials covers a failed login: unknown username or a
	// password that does not match the stored hash. Deliberately a single
	// error so login does not reveal which of the two failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every token verification failure: bad
	// signature, malformed payload, missing subject, or expiry.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserSuspended means the caller authenticated correctly but the
	// account has is_active=false.
	ErrUserSuspended = errors.New("user account is suspended")

	// ErrForbidden means the caller is authenticated but lacks the role
	// required for the operation.
	ErrForbidden = errors.New("not enough permissions")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already registered")
	ErrEmailInUse   = errors.New("email already in use")
	ErrInvalidInput = errors.New("invalid input")
)
