package store

import "errors"

// Sentinel errors returned by store implementations. The service layer maps
// these onto user-facing domain errors.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)
