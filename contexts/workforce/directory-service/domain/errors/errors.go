package errors

import "errors"

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrInvalidProfile       = errors.New("invalid profile input")
	ErrEmailTaken           = errors.New("email is already registered")
	ErrUnsupportedRole      = errors.New("unsupported role")
	ErrAlreadyInTargetState = errors.New("profile already in requested state")
)
