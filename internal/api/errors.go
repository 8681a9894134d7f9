package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// FailureKind represents the category of a failed API operation
type FailureKind int

const (
	// KindServerRejected indicates the server responded with a non-2xx status.
	// The message is the server's own message field when present, otherwise
	// the per-operation default.
	KindServerRejected FailureKind = iota
	// KindUnreachable indicates the request was sent but no response arrived
	// (connection refused, DNS failure, timeout)
	KindUnreachable
	// KindUnknown indicates any other fault, including malformed responses
	KindUnknown
)

// String returns a human-readable name for the failure kind
func (k FailureKind) String() string {
	switch k {
	case KindServerRejected:
		return "ServerRejected"
	case KindUnreachable:
		return "Unreachable"
	case KindUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("FailureKind(%d)", k)
	}
}

// Default messages for failures that carry no server-supplied text.
const (
	// UnreachableMessage mirrors the hosted web client's connectivity error
	UnreachableMessage = "No response received from the server. Please check your connection."

	// UnknownMessage is the catch-all when a fault carries no text of its own
	UnknownMessage = "An unknown error occurred."
)

// APIError represents a classified failure of a single API operation.
// Every error returned by Client methods is an *APIError.
type APIError struct {
	Kind       FailureKind // Category of failure
	Message    string      // User-visible message
	StatusCode int         // HTTP status code (ServerRejected only)
	Err        error       // Underlying error (if any)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message to surface to the user. Panels display
// this verbatim; it is never empty.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return UnknownMessage
}

// NewServerRejected creates a ServerRejected failure
func NewServerRejected(statusCode int, message string) *APIError {
	return &APIError{
		Kind:       KindServerRejected,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewUnreachable creates an Unreachable failure
func NewUnreachable(err error) *APIError {
	return &APIError{
		Kind:    KindUnreachable,
		Message: UnreachableMessage,
		Err:     err,
	}
}

// NewUnknown creates an Unknown failure. The fault's own text is used when
// available, otherwise the generic default.
func NewUnknown(err error) *APIError {
	message := UnknownMessage
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &APIError{
		Kind:    KindUnknown,
		Message: message,
		Err:     err,
	}
}

// ClassifyTransportError converts an error from http.Client.Do into an
// APIError. Anything that means "the request never got a response" becomes
// Unreachable; everything else is Unknown.
func ClassifyTransportError(err error) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return NewUnreachable(err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewUnreachable(err)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NewUnreachable(err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
			errors.Is(opErr.Err, syscall.EHOSTUNREACH) ||
			errors.Is(opErr.Err, syscall.ENETUNREACH) ||
			errors.Is(opErr.Err, syscall.ECONNRESET) {
			return NewUnreachable(err)
		}
	}

	// url.Error wraps the transport fault raised by http.Client.Do
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return NewUnreachable(err)
		}
		// Any dial or connection-level fault means no response arrived
		var innerOp *net.OpError
		if errors.As(urlErr.Err, &innerOp) {
			return NewUnreachable(err)
		}
		inner := ClassifyTransportError(urlErr.Err)
		if inner.Kind == KindUnreachable {
			return NewUnreachable(err)
		}
	}

	return NewUnknown(err)
}

// IsServerRejected checks if an error is a ServerRejected failure
func IsServerRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindServerRejected
}

// IsUnreachable checks if an error is an Unreachable failure
func IsUnreachable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnreachable
}

// IsUnknown checks if an error is an Unknown failure
func IsUnknown(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnknown
}

// IsAuthFailure checks whether a failure indicates an expired or invalid
// credential. Panels use this to route the user back to login.
func IsAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == KindServerRejected &&
		(apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}

// FailureMessage extracts the user-visible message from any error returned
// by this package. Non-APIError values fall back to their own text.
func FailureMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return UnknownMessage
}
