package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidDateRange
	KindNotFound
	KindRoomNotAvailable
	KindWeatherCheckFailed
	KindInvalidStateTransition
)

// Error is the single user-facing failure type of the booking engine. Kind
// drives handling (and HTTP status mapping in transport); Message carries the
// ids, dates or weather context needed to render a precise response.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func ErrInvalidDateRange(msg string) *Error {
	return &Error{Kind: KindInvalidDateRange, Message: msg}
}

func ErrNotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found with id: %s", entity, id)}
}

func ErrRoomNotAvailable(roomID string) *Error {
	return &Error{Kind: KindRoomNotAvailable, Message: fmt.Sprintf("room %s is not available for the selected dates", roomID)}
}

func ErrWeatherCheckFailed(msg string, cause error) *Error {
	return &Error{Kind: KindWeatherCheckFailed, Message: msg, Cause: cause}
}

func ErrInvalidStateTransition(from, to string) *Error {
	return &Error{Kind: KindInvalidStateTransition, Message: fmt.Sprintf("cannot transition reservation from %s to %s", from, to)}
}

func ErrInternal(op string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: op + " failed", Cause: cause}
}
