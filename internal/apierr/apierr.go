// Copyright (c) 2025 Fanline
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package apierr defines typed errors with categories for the Fanline API client.
// It provides a structured approach to error handling with machine-readable error
// kinds and human-friendly messages, so callers can distinguish transport
// failures from protocol failures without string matching.
//
// The package supports wrapping underlying errors while maintaining error kind
// information; wrapped errors stay reachable through errors.Is and errors.As.
package apierr

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// LockContention indicates a batch whose guarding lock is broken. A batch
	// in this state must be discarded. No code path in this implementation
	// produces it (Go mutexes do not poison), it exists so callers can program
	// against the full taxonomy.
	LockContention Kind = "lock_contention"
	// MalformedPayload indicates the caller supplied invalid JSON text as
	// publish or broadcast data.
	MalformedPayload Kind = "malformed_payload"
	// EndpointResolution indicates the configured endpoint resolver failed.
	EndpointResolution Kind = "endpoint_resolution_failed"
	// StatusCode indicates a non-2xx HTTP response from the API endpoint.
	// The wrapped error is a *StatusCodeError carrying code and body.
	StatusCode Kind = "status_code"
	// MalformedResponse indicates an undecodable reply stream or a reply
	// count that does not match the submitted command count.
	MalformedResponse Kind = "malformed_response"
	// EmptyBatch indicates a send was attempted on a batch with no commands.
	EmptyBatch Kind = "empty_batch"
	// NoReply indicates the server returned no reply for a submitted command.
	NoReply Kind = "no_reply"
	// RemoteError indicates the server reported a per-command error.
	RemoteError Kind = "remote_error"
	// DecodeFailed indicates a typed result could not be decoded from a
	// reply's result payload.
	DecodeFailed Kind = "decode_failed"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of err, or the empty Kind when err carries none.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// StatusCodeError reports a non-2xx HTTP status returned by the API endpoint.
// The response body is kept verbatim for diagnostics.
type StatusCodeError struct {
	Code int
	Body string
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("wrong status code: %d, body %s", e.Code, e.Body)
}
