package service

import "errors"

var (
	ErrValidation         = errors.New("missing required field")
	ErrUnknownPackage     = errors.New("unknown package")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
