package reservation

import (
	"errors"
	"fmt"
	"time"
)

// Code identifies a reservation failure kind.
type Code string

const (
	CodeUnauthenticated Code = "unauthenticated"
	CodeNotFound        Code = "not_found"
	CodeSelfBooking     Code = "self_booking"
	CodeInvalidRange    Code = "invalid_range"
	CodeDateConflict    Code = "date_conflict"
	CodeHostUnavailable Code = "host_unavailable"
	CodePaymentFailed   Code = "payment_failed"
	CodeCommitFailed    Code = "commit_failed"
	CodeInternal        Code = "internal"
)

// Error is a reservation failure with a stable machine-readable code.
type Error struct {
	Code    Code
	Message string
	// Day is the first conflicting calendar day; set only for date_conflict.
	Day time.Time
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func wrapError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf extracts the reservation code from err, or CodeInternal when
// err is not a reservation error.
func CodeOf(err error) Code {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return CodeInternal
}
