package console

import "errors"

var (
	ErrAlreadyRegistered = errors.New("already_registered")
	ErrNotRegistered     = errors.New("not_registered")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidPayload    = errors.New("invalid_payload")
	ErrUnknownColumn     = errors.New("unknown_column")
	ErrConflict          = errors.New("conflict")
	ErrInvalidReference  = errors.New("invalid_reference")
)
