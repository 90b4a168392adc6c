package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateID     = errors.New("record id already exists")
	ErrMissingID       = errors.New("record id must be set")
	ErrVersionConflict = errors.New("record version conflict")
)
