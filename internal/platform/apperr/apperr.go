// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Cinedex.

It provides a rich error type that bridges the gap between remote-store failures,
local validation failures, and high-level HTTP responses.

Taxonomy:

  - VALIDATION_ERROR: Input rejected locally or by the remote store. No state change.
  - TRANSPORT_ERROR: The remote store was unreachable or failed. No state change.
  - NOT_FOUND: The target vanished remotely. Stale local state is dropped.
  - PARTIAL_RELATION_FAILURE: Scalar fields committed but genre relations did not.

Every error that leaves the service layer should be an [AppError] so that the
presentation layer can render it consistently.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Codes

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeTransport       = "TRANSPORT_ERROR"
	CodePartialRelation = "PARTIAL_RELATION_FAILURE"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the Cinedex core.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Movie") // Returns "Movie not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Remote Store Errors

// Transport creates a 503 [AppError] for an unreachable or failing remote store.
// The operation was aborted and no local state changed; the caller may retry.
func Transport(cause error) *AppError {
	return &AppError{
		Code:       CodeTransport,
		Message:    "The catalog store is unavailable, please retry",
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// PartialRelation creates a 207 [AppError] for a save whose scalar fields were
// committed while the genre relation write failed. The item needs a re-save.
func PartialRelation(cause error) *AppError {
	return &AppError{
		Code:       CodePartialRelation,
		Message:    "Saved, but genres could not be stored. Please save again",
		HTTPStatus: http.StatusMultiStatus,
		Cause:      cause,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries an [*AppError] with the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// CodeOf returns the [AppError] code of err, or [CodeInternal] for foreign errors.
func CodeOf(err error) string {
	if ae := As(err); ae != nil {
		return ae.Code
	}
	return CodeInternal
}
