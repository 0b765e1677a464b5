package models

import "errors"

var (
	ErrValidation         = errors.New("invalid request data")
	ErrDataNotFound       = errors.New("data not found")
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrInternalError      = errors.New("internal error")
)
