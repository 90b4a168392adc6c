package pipeline

import "errors"

// Sentinel kinds for pipeline validation errors.
var (
	ErrInvalidKind   = errors.New("invalid record kind")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidDate   = errors.New("invalid date")
)
