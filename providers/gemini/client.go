package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
)

// endpoint returns the URL of a model method such as "generateContent".
func (p *Gemini) endpoint(model Model, method string) string {
	return fmt.Sprintf("%s/%s/models/%s:%s", p.config.BaseURL, p.config.APIVersion, model.ID(), method)
}

// callContext applies the configured timeout to ctx.
func (p *Gemini) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.config.Timeout > 0 {
		return context.WithTimeout(ctx, p.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// post sends the prompt to url and returns the response when the status is
// a success. The caller closes the body.
func (p *Gemini) post(ctx context.Context, url string, req core.Request) (*http.Response, error) {
	body, err := buildPayload(req)
	if err != nil {
		return nil, newDecodeError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newNetworkError(err)
	}
	httpReq.Header = p.buildHeaders()

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, normalizeError(resp)
	}
	return resp, nil
}

// doRequest performs a non-streaming generateContent call.
func (p *Gemini) doRequest(ctx context.Context, model Model, req core.Request) (*core.Response, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	resp, err := p.post(ctx, p.endpoint(model, "generateContent"), req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(respBody, &gemResp); err != nil {
		return nil, newDecodeError(err)
	}

	return mapResponse(&gemResp, model), nil
}
