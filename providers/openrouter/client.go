package openrouter

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/latchlm/latchlm/core"
)

func (p *OpenRouter) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.config.Timeout > 0 {
		return context.WithTimeout(ctx, p.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// do sends a request to path relative to the base URL and returns the
// response when the status is a success. The caller closes the body.
func (p *OpenRouter) do(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, newDecodeError(err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, p.config.BaseURL+path, body)
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

// doRequest performs a non-streaming chat completion.
func (p *OpenRouter) doRequest(ctx context.Context, model Model, req core.Request) (*core.Response, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	resp, err := p.do(ctx, http.MethodPost, "chat/completions", buildRequest(model, req, false))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	if apiErr := bodyError(string(data)); apiErr != nil {
		return nil, apiErr
	}

	var chat chatResponse
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, newDecodeError(err)
	}
	return mapResponse(&chat), nil
}

// ListModels fetches the models currently offered by OpenRouter.
// The result also feeds Models and Model.Info.
func (p *OpenRouter) ListModels(ctx context.Context) ([]core.ModelInfo, error) {
	ctx, cancel := p.callContext(ctx)
	defer cancel()

	resp, err := p.do(ctx, http.MethodGet, "models", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, newDecodeError(err)
	}

	models := mapModels(&list)
	remember(models)
	return models, nil
}
