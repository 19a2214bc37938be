package services

import (
	"errors"
	"net/http"
)

// Error is a service-level failure carrying the HTTP status it maps to.
// Controllers pass the message straight through to the response envelope.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound marks a missing product, order, or user.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// InvalidRequest marks a well-formed request the domain rejects: bad stock
// update shape, invalid status transition, invalid sale price.
func InvalidRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Forbidden marks a role or ownership mismatch.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

// Unauthenticated marks a missing or invalid identity.
func Unauthenticated(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// AsError unwraps a *Error from err, or wraps err as a 500.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error"}
}
