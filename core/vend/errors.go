package vend

import (
	"errors"
	"fmt"
	"strings"
)

// TransportError is a failure to obtain a decodable response: the call timed
// out, the connection failed, or the body was not JSON.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("vend %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EndpointError is returned when Vend answered but the payload signals a failure.
// Its message is the remote body, unchanged.
type EndpointError struct {
	Response *Response
}

func (e *EndpointError) Error() string {
	if e.Response == nil {
		return "no response received from Vend"
	}
	if body := strings.TrimSpace(string(e.Response.Raw)); body != "" {
		return body
	}
	return fmt.Sprintf("Vend responded with status %d", e.Response.StatusCode)
}

// PreconditionError reports local input that cannot be sent to Vend. It is
// raised before the remote call it would have corrupted and is never retryable.
type PreconditionError struct {
	// Reason is a human readable description.
	Reason string
	// Index is the offending line item position, or -1 when not item specific.
	Index int
	// Err optionally classifies the failure (e.g. ErrNoApplicableOperation).
	Err error
}

// NewPreconditionError builds a PreconditionError that is not tied to a line item.
func NewPreconditionError(reason string) *PreconditionError {
	return &PreconditionError{Reason: reason, Index: -1}
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is something Vend or the payload rejected,
// as opposed to an infrastructure failure. Batch errors qualify when any of
// their item errors does.
func IsValidation(err error) bool {
	var endpointErr *EndpointError
	if errors.As(err, &endpointErr) {
		return true
	}
	var preconditionErr *PreconditionError
	return errors.As(err, &preconditionErr)
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
