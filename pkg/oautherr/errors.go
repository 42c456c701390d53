// Package oautherr defines the fixed catalog of OAuth 2.0 authorization
// endpoint errors (RFC 6749 Section 4.1.2.1).
package oautherr

import (
	"errors"
	"fmt"
)

// Error codes as sent on the wire in the "error" parameter.
const (
	CodeInvalidRequest          = "invalid_request"
	CodeAccessDenied            = "access_denied"
	CodeUnauthorizedClient      = "unauthorized_client"
	CodeUnsupportedResponseType = "unsupported_response_type"
	CodeInvalidScope            = "invalid_scope"
	CodeServerError             = "server_error"
	CodeTemporarilyUnavailable  = "temporarily_unavailable"
)

// Error is an OAuth 2.0 error condition. Two errors are the same condition
// when their codes match; Description is display text only.
type Error struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
	URI         string `json:"error_uri,omitempty"`
}

// Catalog entries. Treat them as read-only values; use WithDescription to
// attach request-specific text.
var (
	ErrInvalidRequest = &Error{
		Code:        CodeInvalidRequest,
		Description: "The request is missing a required parameter, includes an invalid parameter value, includes a parameter more than once, or is otherwise malformed",
	}
	ErrAccessDenied = &Error{
		Code:        CodeAccessDenied,
		Description: "The resource owner or authorization server denied the request",
	}
	ErrUnauthorizedClient = &Error{
		Code:        CodeUnauthorizedClient,
		Description: "The client is not authorized to request an authorization code using this method",
	}
	ErrUnsupportedResponseType = &Error{
		Code:        CodeUnsupportedResponseType,
		Description: "The authorization server does not support obtaining an authorization code using this method",
	}
	ErrInvalidScope = &Error{
		Code:        CodeInvalidScope,
		Description: "The requested scope is invalid, unknown, or malformed",
	}
	ErrServerError = &Error{
		Code:        CodeServerError,
		Description: "The authorization server encountered an unexpected condition that prevented it from fulfilling the request",
	}
	ErrTemporarilyUnavailable = &Error{
		Code:        CodeTemporarilyUnavailable,
		Description: "The authorization server is currently unable to handle the request due to a temporary overloading or maintenance",
	}
)

// None is the "no error" sentinel. It is never a valid failure value.
var None = &Error{}

var catalog = []*Error{
	ErrInvalidRequest,
	ErrAccessDenied,
	ErrUnauthorizedClient,
	ErrUnsupportedResponseType,
	ErrInvalidScope,
	ErrServerError,
	ErrTemporarilyUnavailable,
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Description)
	}
	return e.Code
}

// IsNone reports whether e is nil or carries no code.
func (e *Error) IsNone() bool {
	return e == nil || e.Code == ""
}

// Equal reports whether e and other describe the same error condition.
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Code == other.Code
}

// Is makes errors.Is match catalog entries by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Equal(t)
}

// WithDescription returns a copy of e carrying desc. The receiver is not
// modified.
func (e *Error) WithDescription(desc string) *Error {
	cp := *e
	cp.Description = desc
	return &cp
}

// WithDescriptionf is WithDescription with fmt.Sprintf formatting.
func (e *Error) WithDescriptionf(format string, args ...any) *Error {
	return e.WithDescription(fmt.Sprintf(format, args...))
}

// Lookup returns the catalog entry for code.
func Lookup(code string) (*Error, bool) {
	for _, e := range catalog {
		if e.Code == code {
			return e, true
		}
	}
	return nil, false
}

// Codes returns all catalog codes in declaration order.
func Codes() []string {
	codes := make([]string, 0, len(catalog))
	for _, e := range catalog {
		codes = append(codes, e.Code)
	}
	return codes
}
