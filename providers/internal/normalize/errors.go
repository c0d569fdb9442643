// Package normalize maps vendor HTTP failures onto core.Error values.
package normalize

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/latchlm/latchlm/core"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// requestIDHeaders are checked in order for a vendor request id.
var requestIDHeaders = []string{"x-request-id", "x-goog-request-id", "request-id"}

// APIError builds an api-kind error from a non-success status and its body.
//
// It understands the envelopes used by the supported vendors:
//
//	{"error":{"message":"...","type":"...","code":"..."}}   OpenAI, OpenRouter
//	{"error":{"code":400,"message":"...","status":"..."}}   Gemini
//	{"message":"..."}                                       plain
//
// When no message can be found, the HTTP status text is used.
func APIError(provider string, status int, body []byte, requestID string) *core.Error {
	message := firstString(body, "error.message", "message", "error")
	if message == "" && !gjson.ValidBytes(body) {
		message = plainText(body)
	}

	e := core.NewAPIError(provider, status, message)
	e.Code = firstString(body, "error.code", "error.status", "error.type")
	if e.Code == "" {
		if c := gjson.GetBytes(body, "error.code"); c.Exists() && c.Type == gjson.Number {
			e.Code = c.Raw
		}
	}
	e.RequestID = requestID
	return e
}

// FromResponse reads the body of a failed response and returns the
// matching api-kind error. The caller still owns resp.Body.
func FromResponse(provider string, resp *http.Response) *core.Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return APIError(provider, resp.StatusCode, body, RequestID(resp.Header))
}

// RequestID returns the vendor request id carried in h, if any.
func RequestID(h http.Header) string {
	for _, name := range requestIDHeaders {
		if v := h.Get(name); v != "" {
			return v
		}
	}
	return ""
}

// Transport wraps a network failure. Context cancellation and deadlines are
// kept as the cause so errors.Is(err, context.Canceled) holds.
func Transport(provider string, err error) *core.Error {
	return core.NewTransportError(provider, err)
}

// Decode wraps a malformed body.
func Decode(provider string, err error) *core.Error {
	return core.NewParseError(provider, err)
}

// IsContextError reports whether err comes from a cancelled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func firstString(body []byte, paths ...string) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, r := range gjson.GetManyBytes(body, paths...) {
		if r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}

// plainText returns a short non-HTML body as the message.
func plainText(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.ContainsAny(text, "<>") {
		return ""
	}
	return text
}
