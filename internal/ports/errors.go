package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrTimeout            = errors.New("operation timed out")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Import Specific Errors
	ErrUnsupportedFormat = errors.New("file format not supported")
	ErrInvalidRecord     = errors.New("trade record failed validation")

	// Store Specific Errors
	ErrStoreUnavailable = errors.New("backing store unreachable")
	ErrQueryFailed      = errors.New("store query failed")
	ErrSaveFailed       = errors.New("store save failed")
	ErrDeleteFailed     = errors.New("store delete failed")
)
