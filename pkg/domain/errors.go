package domain

import "errors"

// Sentinel errors for programmatic handling. Callers use errors.Is to
// distinguish lookup misses (ErrNotFound) and constraint violations
// (ErrDuplicateID, ErrIDMismatch) from persistence faults.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateID  = errors.New("record id already exists")
	ErrIDMismatch   = errors.New("payload id does not match path id")
	ErrCorruptState = errors.New("corrupt durable snapshot")
)
