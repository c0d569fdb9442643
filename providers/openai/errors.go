package openai

import (
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/openai/openai-go"

	"github.com/latchlm/latchlm/core"
	"github.com/latchlm/latchlm/providers/internal/normalize"
)

// convertError maps an SDK failure onto the core taxonomy.
func convertError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		var e *core.Error
		if apiErr.Response != nil && apiErr.Response.Body != nil {
			// The SDK leaves the error body readable on the response.
			e = normalize.FromResponse(providerName, apiErr.Response)
		} else {
			e = core.NewAPIError(providerName, apiErr.StatusCode, apiErr.Message)
		}
		if apiErr.Message != "" {
			e.Message = apiErr.Message
		}
		if e.Code == "" {
			e.Code = apiErr.Code
		}
		e.Err = apiErr
		return e
	}

	if isTransport(err) {
		return newNetworkError(err)
	}
	return newDecodeError(err)
}

// failedResponse reports a response whose status is "failed". Such answers
// arrive with a success status, so the error object becomes a 502.
// It returns nil for any other response.
func failedResponse(r *responsesResponse) error {
	if r.Status != "failed" && r.Error == nil {
		return nil
	}
	e := core.NewAPIError(providerName, http.StatusBadGateway, "response failed")
	if r.Error != nil {
		if r.Error.Message != "" {
			e.Message = r.Error.Message
		}
		e.Code = r.Error.Code
	}
	return e
}

// eventError converts a stream error event.
func eventError(ev streamEvent, requestID string) error {
	e := core.NewAPIError(providerName, http.StatusBadGateway, ev.Message)
	e.Code = ev.Code
	e.RequestID = requestID
	return e
}

func isTransport(err error) bool {
	if normalize.IsContextError(err) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func newNetworkError(err error) *core.Error {
	return normalize.Transport(providerName, err)
}

func newDecodeError(err error) *core.Error {
	return normalize.Decode(providerName, err)
}
