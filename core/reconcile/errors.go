package reconcile

import "errors"

var (
	// ErrSourceUnavailable means a source could not be reached or is not configured.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNoMatch means a source answered but has nothing for the identifier.
	ErrNoMatch = errors.New("no match found")
	// ErrUnknownField is returned for names outside the field catalog.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidValue is returned when a value does not fit its field type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrIdentifierLocked is returned when a patch tries to replace a set identifier.
	ErrIdentifierLocked = errors.New("identifier field is locked")
)
