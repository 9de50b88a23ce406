package model

import "errors"

// Ledger error kinds. Handlers match these with errors.Is to pick a
// response code; ledger functions wrap them with context via fmt.Errorf.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotOwner        = errors.New("caller is not the current owner")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
)
