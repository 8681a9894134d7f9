package api

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"
)

// timeoutError implements net.Error with Timeout() == true
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestFailureKind_String(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want string
	}{
		{KindServerRejected, "ServerRejected"},
		{KindUnreachable, "Unreachable"},
		{KindUnknown, "Unknown"},
		{FailureKind(42), "FailureKind(42)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAPIError_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := NewUnknown(inner)

	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the underlying error")
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestNewUnknown_UsesFaultTextWhenAvailable(t *testing.T) {
	err := NewUnknown(errors.New("something odd"))
	if err.Message != "something odd" {
		t.Errorf("Message = %q, want the fault's own text", err.Message)
	}

	err = NewUnknown(nil)
	if err.Message != UnknownMessage {
		t.Errorf("Message = %q, want generic default", err.Message)
	}
}

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: 0, // unused
		},
		{
			name: "timeout",
			err:  timeoutError{},
			want: KindUnreachable,
		},
		{
			name: "dns failure",
			err:  &net.DNSError{Err: "no such host", Name: "api.example.com"},
			want: KindUnreachable,
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			want: KindUnreachable,
		},
		{
			name: "url error wrapping dial failure",
			err: &url.Error{
				Op:  "Post",
				URL: "http://192.0.2.1",
				Err: &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.EHOSTUNREACH)},
			},
			want: KindUnreachable,
		},
		{
			name: "unrelated fault",
			err:  fmt.Errorf("json: cannot unmarshal"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyTransportError(tt.err)
			if tt.err == nil {
				if got != nil {
					t.Errorf("ClassifyTransportError(nil) = %v, want nil", got)
				}
				return
			}
			if got.Kind != tt.want {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestIsAuthFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"401 rejection", NewServerRejected(401, "Invalid token"), true},
		{"403 rejection", NewServerRejected(403, "Forbidden"), true},
		{"500 rejection", NewServerRejected(500, "oops"), false},
		{"unreachable", NewUnreachable(timeoutError{}), false},
		{"plain error", errors.New("nope"), false},
		{"wrapped 401", fmt.Errorf("deleting: %w", NewServerRejected(401, "expired")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthFailure(tt.err); got != tt.want {
				t.Errorf("IsAuthFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFailureMessage(t *testing.T) {
	if got := FailureMessage(NewServerRejected(400, "Bad rule")); got != "Bad rule" {
		t.Errorf("FailureMessage = %q, want \"Bad rule\"", got)
	}

	if got := FailureMessage(errors.New("plain")); got != "plain" {
		t.Errorf("FailureMessage = %q, want \"plain\"", got)
	}

	if got := FailureMessage(nil); got != UnknownMessage {
		t.Errorf("FailureMessage(nil) = %q, want generic default", got)
	}
}

func TestNewUnreachable_CarriesConnectivityDefault(t *testing.T) {
	err := NewUnreachable(&net.OpError{Op: "dial", Err: errors.New("refused")})
	if err.Message != UnreachableMessage {
		t.Errorf("Message = %q, want %q", err.Message, UnreachableMessage)
	}
}
