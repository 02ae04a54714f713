package raindrop

import (
	"errors"
	"fmt"
)

// Kind classifies an adapter-level failure. The same upstream status always
// maps to the same Kind.
type Kind string

const (
	KindInvalidArguments Kind = "invalid_arguments"
	KindUnknownTool      Kind = "unknown_tool"
	KindNotFound         Kind = "not_found"
	KindUnauthorized     Kind = "unauthorized"
	KindRateLimited      Kind = "rate_limited"
	KindGatewayTimeout   Kind = "gateway_timeout"
	KindUpstream         Kind = "upstream_error"
	KindTransient        Kind = "transient_network"
	KindCanceled         Kind = "canceled"
)

// Error is the structured failure surfaced to MCP clients. Status carries the
// raw upstream HTTP status when one was received, zero otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// NewError builds an adapter error without an upstream status.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// KindOf extracts the Kind from err, or KindUpstream when err is not an
// adapter error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstream
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// kindForStatus maps an upstream HTTP status to the adapter taxonomy.
func kindForStatus(status int) Kind {
	switch status {
	case 401:
		return KindUnauthorized
	case 404:
		return KindNotFound
	case 429:
		return KindRateLimited
	default:
		return KindUpstream
	}
}
