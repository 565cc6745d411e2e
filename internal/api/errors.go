// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api defines the typed error kinds shared by all handlers and
// the JSON response envelopes of the content API.
package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an API error into one of the failure categories the
// HTTP layer knows how to map to a status code.
type Kind int

const (
	// KindValidation: malformed or missing input (400).
	KindValidation Kind = iota
	// KindNotFound: unknown slug, id, or category (404).
	KindNotFound
	// KindConflict: duplicate slug, or a category delete blocked by
	// dependent posts (409).
	KindConflict
	// KindUnauthorized: privileged operation without a valid caller
	// context (401).
	KindUnauthorized
	// KindUnavailable: the underlying store is unreachable (503).
	KindUnavailable
)

// Error is an API failure with a user-facing message and a kind that
// determines the HTTP status.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a 400-kind error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound returns a 404-kind error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict returns a 409-kind error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unauthorized returns a 401-kind error.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Unavailable wraps a storage failure as a 503-kind error.
func Unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: "storage unavailable", Err: err}
}

// KindOf extracts the kind of err. Untyped errors are treated as
// storage failures: stores only return wrapped driver errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnavailable
}

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusServiceUnavailable
	}
}

// Message returns the user-facing message for err. Untyped (storage)
// errors get a generic message so driver details never leak to clients.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Ocorreu um erro."
}
