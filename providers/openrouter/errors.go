package openrouter

import (
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers/internal/normalize"
)

func normalizeError(resp *http.Response) error {
	return normalize.FromResponse(providerName, resp)
}

// bodyError reports an error object sent with a success status, such as a
// mid-stream {"error":{"code":502,"message":"Provider returned error"}}.
// It returns nil when data carries no error.
func bodyError(data string) error {
	e := gjson.Get(data, "error")
	if !e.Exists() || e.Type == gjson.Null {
		return nil
	}
	status := int(e.Get("code").Int())
	if status == 0 {
		status = http.StatusBadGateway
	}
	return normalize.APIError(providerName, status, []byte(data), "")
}

func newNetworkError(err error) *core.Error {
	return normalize.Transport(providerName, err)
}

func newDecodeError(err error) *core.Error {
	return normalize.Decode(providerName, err)
}
