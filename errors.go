// errors.go
package vaultprefs

import "errors"

// Errors returned by the generic API and the storage and cache backends.
// The typed accessors never return them; they log and fall back to defaults.
var (
	ErrInvalidInput         = errors.New("invalid vault preference input")
	ErrInvalidKey           = errors.New("invalid vault preference key")
	ErrInvalidType          = errors.New("unsupported vault preference type")
	ErrInvalidValue         = errors.New("value outside the vault preference domain")
	ErrPreferenceNotDefined = errors.New("vault preference not defined")
)

// Errors describing what a backend found, or failed to reach.
var (
	// ErrNotFound means nothing is stored under the key; readers use the default.
	ErrNotFound = errors.New("vault preference not stored")
	// ErrTypeMismatch means the stored entry has a different backing type than the setting.
	ErrTypeMismatch       = errors.New("stored vault preference has a different type")
	ErrStorageUnavailable = errors.New("vault preference storage unavailable")
	ErrCacheUnavailable   = errors.New("vault preference cache unavailable")
	// ErrSerialization wraps JSON encode and decode failures of stored values.
	ErrSerialization = errors.New("vault preference serialization failed")
)
