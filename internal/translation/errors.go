package translation

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed resolution.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindUpstream
	KindUnexpectedResponse
	KindTransport
	// KindCanceled marks a resolution abandoned by its caller, usually
	// because a newer one superseded it.
	KindCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstream:
		return "upstream_error"
	case KindUnexpectedResponse:
		return "unexpected_response"
	case KindTransport:
		return "transport_error"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MsgEmptyText    = "enter text to translate"
	MsgSameLanguage = "source and target language must differ"
	MsgRetry        = "translation failed, please try again"
	MsgCanceled     = "translation canceled"
)

// Error is returned for every failed resolution. Message is safe to show to
// the user; Err carries the diagnostic cause and is only logged.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusError is the cause attached to KindUpstream errors.
type StatusError struct {
	Gateway    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Gateway, e.StatusCode)
}

// KindOf returns the kind of err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func upstreamError(gateway string, status int, body []byte) *Error {
	return &Error{
		Kind:    KindUpstream,
		Message: MsgRetry,
		Err:     &StatusError{Gateway: gateway, StatusCode: status, Body: string(body)},
	}
}

func unexpectedResponse(gateway, format string, args ...any) *Error {
	return &Error{
		Kind:    KindUnexpectedResponse,
		Message: MsgRetry,
		Err:     fmt.Errorf("%s: "+format, append([]any{gateway}, args...)...),
	}
}

func transportError(gateway string, err error) *Error {
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Message: MsgCanceled, Err: err}
	}
	return &Error{
		Kind:    KindTransport,
		Message: MsgRetry,
		Err:     fmt.Errorf("%s: %w", gateway, err),
	}
}
