package errors

import (
	"errors"
)

var (
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountLocked        = errors.New("account locked")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired reset code")
	ErrStorage              = errors.New("storage failure")
)
