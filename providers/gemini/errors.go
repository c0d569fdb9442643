package gemini

import (
	"net/http"

	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers/internal/normalize"
)

// normalizeError converts a failed HTTP response into an api-kind error.
func normalizeError(resp *http.Response) error {
	return normalize.FromResponse(providerName, resp)
}

// newNetworkError wraps a transport failure.
func newNetworkError(err error) *core.Error {
	return normalize.Transport(providerName, err)
}

// newDecodeError wraps a malformed response body.
func newDecodeError(err error) *core.Error {
	return normalize.Decode(providerName, err)
}
