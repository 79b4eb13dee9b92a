package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed     = errors.New("store is not attached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Entity operation errors.
var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidID    = errors.New("invalid entity ID")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidField = errors.New("invalid field")
)

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrBackendMismatch = errors.New("config selects a different backend")
)

// Stage configuration errors.
var (
	ErrDuplicateStage = errors.New("duplicate stage identifier")
	ErrStageNotFound  = errors.New("stage not found")
)

// ErrInvalidBackup is returned when a backup document fails structural
// validation: not JSON at all, or no data.pipelines array. The caller can
// present it to the user and retry with a different file; nothing has been
// written when it is returned.
var ErrInvalidBackup = errors.New("invalid backup document")
