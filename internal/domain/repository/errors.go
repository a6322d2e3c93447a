package repository

import "errors"

// Storage-level outcomes every implementation must report with these
// sentinels so services can map them without knowing the backend.
var (
	ErrNotFound  = errors.New("repository: not found")
	ErrConflict  = errors.New("repository: unique constraint violated")
	ErrReference = errors.New("repository: referenced row does not exist")
	ErrMalformed = errors.New("repository: malformed identifier")
)
