package core

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
//
// The set of kinds is open: new kinds may be added in later releases, so code
// that switches on a Kind MUST keep a default branch.
type Kind string

const (
	// KindTransport is a network or timeout failure. Err holds the transport error.
	KindTransport Kind = "transport"
	// KindAPI is a non-success answer from the remote API. Status and Message are set.
	KindAPI Kind = "api"
	// KindParse is a malformed response body. Err holds the decoding error.
	KindParse Kind = "parse"
	// KindInvalidModel is a model identifier rejected by the selected provider.
	KindInvalidModel Kind = "invalid_model"
	// KindProvider is a provider configuration failure, such as a missing API key.
	KindProvider Kind = "provider"
)

// Error is the single failure type returned across the Provider boundary.
// The layer that first detects a failure wraps the original error in Err
// instead of flattening it to a string.
type Error struct {
	Kind      Kind
	Provider  string
	Status    int
	Code      string
	RequestID string
	Message   string
	Model     string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindTransport:
		msg = "request failed: " + e.detail()
	case KindAPI:
		msg = fmt.Sprintf("api error: %d - %s", e.Status, e.Message)
		if e.Code != "" {
			msg += " (code=" + e.Code + ")"
		}
		if e.RequestID != "" {
			msg += " (request_id=" + e.RequestID + ")"
		}
	case KindParse:
		msg = "failed to parse the response: " + e.detail()
	case KindInvalidModel:
		msg = "invalid model name: " + e.Model
	case KindProvider:
		msg = "provider settings error: " + e.detail()
	default:
		msg = string(e.Kind) + ": " + e.detail()
	}
	if e.Provider != "" {
		return e.Provider + ": " + msg
	}
	return msg
}

func (e *Error) detail() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

// Unwrap returns the preserved underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels and, for API errors, the status-class sentinels.
func (e *Error) Is(target error) bool {
	if k, ok := sentinelKind(target); ok {
		return e.Kind == k
	}
	if e.Kind == KindAPI {
		return statusSentinel(e.Status) == target
	}
	return false
}

// Kind sentinels, one per variant.
var (
	ErrTransport      = errors.New("transport error")
	ErrAPI            = errors.New("api error")
	ErrParse          = errors.New("parse error")
	ErrInvalidModel   = errors.New("invalid model")
	ErrProviderConfig = errors.New("provider configuration error")
)

// Status-class sentinels for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")
)

func sentinelKind(target error) (Kind, bool) {
	switch target {
	case ErrTransport:
		return KindTransport, true
	case ErrAPI:
		return KindAPI, true
	case ErrParse:
		return KindParse, true
	case ErrInvalidModel:
		return KindInvalidModel, true
	case ErrProviderConfig:
		return KindProvider, true
	default:
		return "", false
	}
}

func statusSentinel(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	case status >= 400:
		return ErrBadRequest
	default:
		return nil
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when
// err is nil or carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NewTransportError wraps a network or timeout failure.
func NewTransportError(provider string, err error) *Error {
	return &Error{Kind: KindTransport, Provider: provider, Err: err}
}

// NewAPIError records a non-success answer from the remote API.
func NewAPIError(provider string, status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: KindAPI, Provider: provider, Status: status, Message: message}
}

// NewParseError wraps a response decoding failure.
func NewParseError(provider string, err error) *Error {
	return &Error{Kind: KindParse, Provider: provider, Err: err}
}

// NewInvalidModelError reports a model identifier the provider does not accept.
func NewInvalidModelError(provider, model string) *Error {
	return &Error{Kind: KindInvalidModel, Provider: provider, Model: model}
}

// NewProviderError reports a provider configuration failure.
func NewProviderError(provider, message string) *Error {
	return &Error{Kind: KindProvider, Provider: provider, Message: message}
}
