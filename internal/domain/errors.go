package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSubscriptionFailed is returned when subscription to events fails
	ErrSubscriptionFailed = errors.New("subscription failed")

	// ErrDuplicate is returned by the store when a write violates a uniqueness constraint
	ErrDuplicate = errors.New("duplicate key")

	// ErrInvalidEvent is returned when a chain log cannot be decoded into an event
	ErrInvalidEvent = errors.New("invalid event")

	// ErrOperatorNotFound is returned when no mint transfer exists for a token id
	ErrOperatorNotFound = errors.New("mint operator not found")
)

// IndexErrorKind classifies why a token could not be indexed
type IndexErrorKind string

const (
	ErrKindMetadataUnavailable      IndexErrorKind = "MetadataUnavailable"
	ErrKindNoDeviceProperty         IndexErrorKind = "NoDeviceProperty"
	ErrKindDeviceCreationFailed     IndexErrorKind = "DeviceCreationFailed"
	ErrKindPersistenceError         IndexErrorKind = "PersistenceError"
	ErrKindOperatorResolutionFailed IndexErrorKind = "OperatorResolutionFailed"
	// ErrKindInFlight means another attempt for the same token id is running
	ErrKindInFlight IndexErrorKind = "InFlight"
)

// IndexError is the failure outcome of a token indexing attempt
type IndexError struct {
	Kind    IndexErrorKind
	TokenID uint64
	Detail  string
	Err     error
}

// NewIndexError creates an IndexError of the given kind
func NewIndexError(kind IndexErrorKind, tokenID uint64, detail string, err error) *IndexError {
	return &IndexError{Kind: kind, TokenID: tokenID, Detail: detail, Err: err}
}

func (e *IndexError) Error() string {
	msg := fmt.Sprintf("%s: token %d", e.Kind, e.TokenID)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// Duplicate reports whether the failure was a uniqueness violation on the token row,
// meaning the token is already indexed.
func (e *IndexError) Duplicate() bool {
	return e.Kind == ErrKindPersistenceError && errors.Is(e.Err, ErrDuplicate)
}

// AsIndexError extracts an IndexError from err
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// IsInFlight reports whether err is an InFlight IndexError
func IsInFlight(err error) bool {
	ie, ok := AsIndexError(err)
	return ok && ie.Kind == ErrKindInFlight
}

// IsDuplicate reports whether err is a duplicate PersistenceError
func IsDuplicate(err error) bool {
	ie, ok := AsIndexError(err)
	return ok && ie.Duplicate()
}
