package domain

import "errors"

// Sentinel errors shared by every layer. Adapters wrap them with %w so
// callers can test with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType covers both unknown file extensions and unknown
	// annotation types.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFileNotFound means the tracked path no longer exists on disk.
	ErrFileNotFound = errors.New("file not found")

	// ErrStoreUnavailable is wrapped together with the driver error.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrTooSmall rejects drawn shapes at or under the minimum extent.
	ErrTooSmall = errors.New("shape too small")
)
