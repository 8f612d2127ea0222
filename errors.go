// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package zeromodel

import "fmt"

// RequestError represents a structured transport error with operation
// context
type RequestError struct {
	// Operation name that failed
	Operation string

	// Human-readable error message
	Message string

	// InternalMsg contains detailed error information for internal logging
	InternalMsg string

	// StatusCode is the last HTTP status code observed, 0 when the
	// request never reached the server
	StatusCode int

	// Number of retry attempts made
	Retries int

	// IsTransient indicates if the error is transient and was retried
	IsTransient bool
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.Retries > 0 {
		return fmt.Sprintf("zeromodel: %s failed: %s (retries: %d)", e.Operation, e.Message, e.Retries)
	}
	return fmt.Sprintf("zeromodel: %s failed: %s", e.Operation, e.Message)
}

// DetailedError returns the full error message including internal details
//
// This should only be used in secure logging contexts where sensitive
// information disclosure is acceptable (e.g., server-side logs, debug
// output).
func (e *RequestError) DetailedError() string {
	if e.InternalMsg == "" {
		return e.Error()
	}
	if e.Retries > 0 {
		return fmt.Sprintf("zeromodel: %s failed: %s (internal: %s, retries: %d)",
			e.Operation, e.Message, e.InternalMsg, e.Retries)
	}
	return fmt.Sprintf("zeromodel: %s failed: %s (internal: %s)",
		e.Operation, e.Message, e.InternalMsg)
}

// ErrorModel represents one transport failure detail
type ErrorModel struct {
	// StatusCode is the HTTP status code, 0 for network-level failures
	StatusCode int

	// Message is the error message
	Message string

	// Details contains additional error information (e.g. a response
	// body excerpt)
	Details string
}

// TransientStatusCodes lists the HTTP status codes that trigger automatic
// retry with backoff.
//
// These are typically caused by temporary conditions: rate limiting,
// gateway hiccups, or a server that is briefly overloaded or restarting.
//
// NOTE: 500 Internal Server Error is intentionally excluded. It is a
// catch-all status that includes many permanent failures (bugs, invalid
// state); blindly retrying it can mask real problems and waste resources.
var TransientStatusCodes = []int{
	// Client-side timeout at the server
	408,

	// Rate limiting or quota exceeded
	429,

	// Upstream gateway failures
	502,

	// Service temporarily unavailable
	503,

	// Gateway timeout
	504,
}

// isTransientStatus reports whether an HTTP status code should be retried
func isTransientStatus(code int) bool {
	for _, transient := range TransientStatusCodes {
		if code == transient {
			return true
		}
	}
	return false
}
