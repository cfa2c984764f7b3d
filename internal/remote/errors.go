package remote

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes a failed remote operation
type ErrorKind string

const (
	// KindRemote indicates the service answered but reported a failure
	KindRemote ErrorKind = "remote"

	// KindTransport indicates the request never produced a usable response
	KindTransport ErrorKind = "transport"
)

// NetworkErrorPrefix starts every transport failure message
const NetworkErrorPrefix = "Network error: "

// Fallback messages used when the service omits its own
const (
	FallbackSummarizeMessage = "Summarization failed"
	FallbackDemoMessage      = "Failed to load demo"
)

// Error is the only error type returned by Client. Message is display-ready.
type Error struct {
	// Kind categorizes the error
	Kind ErrorKind `json:"kind"`

	// Message is shown to the user verbatim
	Message string `json:"message"`

	// Op is the endpoint that failed (summarize or demo)
	Op string `json:"op"`

	// StatusCode of the HTTP response, zero when none was received
	StatusCode int `json:"status_code,omitempty"`

	// RequestID sent in the X-Request-ID header
	RequestID string `json:"request_id,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("op=%s", e.Op), fmt.Sprintf("kind=%s", e.Kind)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error of the same kind
func (e *Error) Is(target error) bool {
	if re, ok := target.(*Error); ok {
		return e.Kind == re.Kind
	}
	return false
}

// NewRemoteError creates a server-reported failure. An empty message is
// replaced with the fallback for the operation.
func NewRemoteError(op, message, fallback string, statusCode int) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{
		Kind:       KindRemote,
		Message:    message,
		Op:         op,
		StatusCode: statusCode,
	}
}

// NewTransportError creates a connectivity failure with the network prefix
func NewTransportError(op string, cause error) *Error {
	description := "unknown error"
	if cause != nil {
		description = cause.Error()
	}
	return &Error{
		Kind:    KindTransport,
		Message: NetworkErrorPrefix + description,
		Op:      op,
		Cause:   cause,
	}
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsTransportError checks if an error is a transport failure
func IsTransportError(err error) bool {
	re, ok := AsError(err)
	return ok && re.Kind == KindTransport
}

// IsRemoteError checks if an error is a server-reported failure
func IsRemoteError(err error) bool {
	re, ok := AsError(err)
	return ok && re.Kind == KindRemote
}

// MessageOf returns the display message for any error, falling back when the
// error carries none.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if re, ok := AsError(err); ok && re.Message != "" {
		return re.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
